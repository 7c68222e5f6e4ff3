package file

import "os"

// fileOps defines the minimal filesystem operations needed by the file tools.
type fileOps interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	WriteFileAtomic(path string, content []byte, perm os.FileMode) error
}

// pathResolver defines workspace path resolution operations.
type pathResolver interface {
	Resolve(path string) (abs string, rel string, err error)
}
