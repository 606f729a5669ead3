package dataset

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/gabriel-vasile/mimetype"

	"github.com/Meesho/BharatMLStack/transferflow/handlers/config"
	"github.com/Meesho/BharatMLStack/transferflow/internal/errors"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/logger"
	"github.com/Meesho/BharatMLStack/transferflow/pkg/metrics"
)

// ContentValidator decides whether a file's content matches the expected
// format. Extension matching alone is not trusted: corpora routinely contain
// mislabeled or truncated files that share the extension.
type ContentValidator interface {
	IsValid(path string) bool
}

// MimeValidator validates file content by magic-byte detection.
type MimeValidator struct {
	MIME string
}

func (v *MimeValidator) IsValid(path string) bool {
	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return false
	}
	return detected.Is(v.MIME)
}

type Scanner struct {
	validator ContentValidator
}

func NewScanner(validator ContentValidator) *Scanner {
	return &Scanner{validator: validator}
}

// Scan enumerates both class directories and builds the dataset index:
// class-0 records first, class-1 records after. Each class list is sorted
// lexicographically before use since glob order is filesystem dependent,
// then capped at SampleCap, then content-filtered. The cap is applied
// before filtering, so classes can end up with different final sizes when
// invalid files fall inside the capped window.
func (s *Scanner) Scan(conf *config.DatasetConfig) (Index, error) {
	startTime := time.Now()
	metricTags := []string{"component-name", "dataset_scanner"}

	negatives, err := s.scanClass(conf, conf.NegativeDir)
	if err != nil {
		return nil, err
	}
	positives, err := s.scanClass(conf, conf.PositiveDir)
	if err != nil {
		return nil, err
	}

	index := make(Index, 0, len(negatives)+len(positives))
	seen := hashset.New()
	for _, path := range negatives {
		index = append(index, Record{Path: path, Label: LabelNegative})
		seen.Add(path)
	}
	for _, path := range positives {
		if seen.Contains(path) {
			return nil, &errors.AlignmentError{
				ErrorMsg: fmt.Sprintf("duplicate path %s appears in both class directories", path),
			}
		}
		index = append(index, Record{Path: path, Label: LabelPositive})
	}

	logger.Info(fmt.Sprintf("Scanned dataset under %s: %d negative, %d positive", conf.RootDir, len(negatives), len(positives)))
	metrics.Count("transferflow.scanner.files.total", int64(len(index)), metricTags)
	metrics.Timing("transferflow.scanner.latency", time.Since(startTime), metricTags)
	return index, nil
}

func (s *Scanner) scanClass(conf *config.DatasetConfig, classDir string) ([]string, error) {
	dir := filepath.Join(conf.RootDir, classDir)
	matches, err := filepath.Glob(filepath.Join(dir, conf.Pattern))
	if err != nil {
		return nil, &errors.DataNotFoundError{
			ErrorMsg: fmt.Sprintf("bad file pattern %q for directory %s: %v", conf.Pattern, dir, err),
		}
	}

	// glob returns files in unspecified filesystem order
	sort.Strings(matches)

	if len(matches) > conf.SampleCap {
		matches = matches[:conf.SampleCap]
	}

	valid := make([]string, 0, len(matches))
	for _, path := range matches {
		if s.validator.IsValid(path) {
			valid = append(valid, path)
		}
	}

	if len(valid) == 0 {
		return nil, &errors.DataNotFoundError{
			ErrorMsg: fmt.Sprintf("no valid files matching %q found under %s; "+
				"check that the directory exists and contains uncorrupted %s files",
				conf.Pattern, dir, conf.MIMEType),
		}
	}
	return valid, nil
}
