package etcd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Meesho/BharatMLStack/transferflow/pkg/configs"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/logger"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// V1 stores the whole pipeline configuration as one JSON document under
// basePath + configPath and refreshes the bound config instance whenever
// any key under the base path changes.
type V1 struct {
	conn               *clientv3.Client
	basePath           string
	config             interface{}
	appName            string
	WatchPathCallbacks map[string][]func() error
	mu                 sync.Mutex
}

func newV1Etcd(config interface{}, configs *configs.AppConfigs) Etcd {
	if configs.Configs.ApplicationName == "" || configs.Configs.ETCD_SERVER == "" {
		logger.Panic("app_name or etcd_server is not set", nil)
	}
	appName := configs.Configs.ApplicationName
	etcdBasePath := basePath + appName + configPath
	servers := strings.Split(configs.Configs.ETCD_SERVER, ",")

	conn, err := clientv3.New(clientv3.Config{
		Endpoints:           servers,
		Username:            configs.Configs.ETCD_USERNAME,
		Password:            configs.Configs.ETCD_PASSWORD,
		DialTimeout:         connectionTimeout,
		DialKeepAliveTime:   connectionTimeout,
		PermitWithoutStream: true,
	})
	if err != nil {
		logger.Error("failed to create etcd client", err)
	}
	v1Etcd := &V1{
		conn:               conn,
		basePath:           etcdBasePath,
		config:             config,
		appName:            appName,
		WatchPathCallbacks: make(map[string][]func() error),
	}
	err = v1Etcd.UpdateConfig(config)
	if err != nil {
		logger.Panic("unable to create config from etcd", err)
	}
	if configs.Configs.ETCD_WATCHER_ENABLED {
		v1Etcd.WatchPrefix(context.Background(), etcdBasePath)
	}
	return v1Etcd
}

func (v *V1) GetConfigInstance() interface{} {
	return v.config
}

func (v *V1) GetBasePath() string {
	return v.basePath
}

func (v *V1) UpdateConfig(configuration interface{}) error {
	resp, err := v.conn.Get(context.Background(), v.basePath)
	if err != nil {
		logger.Error(fmt.Sprintf("Error getting config from etcd path %s", v.basePath), err)
		return err
	}
	if len(resp.Kvs) == 0 {
		return fmt.Errorf("no config document found at etcd path %s", v.basePath)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := json.Unmarshal(resp.Kvs[0].Value, configuration); err != nil {
		logger.Error("unable to unmarshal config document from etcd", err)
		return err
	}
	v.config = configuration
	return nil
}

// WatchPrefix keeps a watch open on all keys under prefix. The server can
// close the watch stream (compaction, leader change, network partition), so
// a fresh watch is opened every time the previous one drains.
func (v *V1) WatchPrefix(ctx context.Context, prefix string) {
	go func() {
		for {
			func() {
				defer func() {
					if r := recover(); r != nil {
						logger.Error("panic in watch prefix", fmt.Errorf("%v", r))
					}
				}()
				watchChan := v.conn.Watch(ctx, prefix, clientv3.WithPrefix())
				v.consumeWatch(watchChan, prefix)
			}()

			//Avoid frequent restarts on panics and closed streams
			time.Sleep(5 * time.Second)
		}
	}()
}

// consumeWatch drains one watch stream, refreshing the config and running
// registered callbacks per event. Returns when the stream closes.
func (v *V1) consumeWatch(watchChan clientv3.WatchChan, prefix string) {
	for watchResp := range watchChan {
		for _, event := range watchResp.Events {
			err := v.UpdateConfig(v.config)
			if err != nil {
				logger.Error("unable to refresh config from etcd, not executing watch callbacks", err)
				continue
			}
			for _, callback := range v.callbacksForKey(prefix, string(event.Kv.Key)) {
				if err = callback(); err != nil {
					logger.Error(fmt.Sprintf("unable to execute watch callback for key %s", event.Kv.Key), err)
				}
			}
		}
	}
}

// callbacksForKey returns the registered callbacks whose watch path is a
// prefix of the changed key.
func (v *V1) callbacksForKey(prefix, key string) []func() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	var matched []func() error
	for path, functions := range v.WatchPathCallbacks {
		if strings.HasPrefix(key, prefix+path) {
			matched = append(matched, functions...)
		}
	}
	return matched
}

func (v *V1) SetValue(path string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()
	_, err = v.conn.Put(ctx, v.basePath+path, string(data))
	return err
}

func (v *V1) CreateNode(path string, value interface{}) error {
	exists, err := v.IsNodeExist(path)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("etcd node already exists at path %s", path)
	}
	return v.SetValue(path, value)
}

func (v *V1) IsNodeExist(path string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()
	resp, err := v.conn.Get(ctx, v.basePath+path, clientv3.WithCountOnly())
	if err != nil {
		return false, err
	}
	return resp.Count > 0, nil
}

func (v *V1) RegisterWatchPathCallback(path string, callback func() error) error {
	if callback == nil {
		return fmt.Errorf("nil callback registered for path %s", path)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.WatchPathCallbacks[path] = append(v.WatchPathCallbacks[path], callback)
	return nil
}
