package storage

import (
	"io/fs"
	"net/http"
)

// filesOnly hides directories so the file server never lists a lesson's media
type filesOnly struct {
	root http.FileSystem
}

// FileSystem serves the stored media files under basePath; directories read as missing
func FileSystem(basePath string) http.FileSystem {
	return filesOnly{root: http.Dir(basePath)}
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.root.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}
