package config

const SourceFileExt = ".v"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".v", ".volt"}

// Built-in function names
const (
	PutsFuncName  = "puts"
	PrintFuncName = "print"
)

// TrimSourceExt strips a recognized source extension for display.
func TrimSourceExt(path string) string {
	for _, ext := range SourceFileExtensions {
		if len(path) > len(ext) && path[len(path)-len(ext):] == ext {
			return path[:len(path)-len(ext)]
		}
	}
	return path
}

// IsSourceFile reports whether path carries a recognized source extension.
func IsSourceFile(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) > len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}
