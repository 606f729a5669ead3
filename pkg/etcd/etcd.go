package etcd

import (
	"sync"
	"time"
)

const (
	basePath          = "/config/transferflow/"
	configPath        = "/pipeline-config"
	connectionTimeout = 30 * time.Second
)

var (
	once sync.Once
)

type Etcd interface {
	GetConfigInstance() interface{}
	GetBasePath() string
	UpdateConfig(config interface{}) error
	SetValue(path string, value interface{}) error
	CreateNode(path string, value interface{}) error
	IsNodeExist(path string) (bool, error)
	RegisterWatchPathCallback(path string, callback func() error) error
}
