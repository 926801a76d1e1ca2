package storagesvc

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/gradnet/backend/core"
)

// LocalStorage saves uploaded files under a media root on disk and
// serves them back by URL.
type LocalStorage struct {
	root    string
	baseURL string
}

var _ core.FileStorage = (*LocalStorage)(nil)

func NewLocalStorage(conf *core.Config) (*LocalStorage, error) {
	root := conf.Media.Root
	if !filepath.IsAbs(root) {
		root = filepath.Join(conf.WorkDir, root)
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, errors.Wrap(err, "creating media root")
	}
	return &LocalStorage{root: root, baseURL: strings.TrimSuffix(conf.Media.BaseURL, "/")}, nil
}

// Root is the absolute directory files are written to.
func (s *LocalStorage) Root() string { return s.root }

func (s *LocalStorage) Save(name string, r io.Reader) (string, error) {
	// keep the extension, randomize the rest to avoid collisions
	fname := uuid.New().String() + strings.ToLower(filepath.Ext(name))
	f, err := os.Create(filepath.Join(s.root, fname))
	if err != nil {
		return "", errors.Wrap(err, "creating media file")
	}
	defer f.Close()

	if _, err = io.Copy(f, r); err != nil {
		return "", errors.Wrap(err, "writing media file")
	}
	return s.baseURL + "/" + fname, nil
}
