package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ResolveTool returns the path of the named executable, looking on PATH first
// and next to the running binary second. When neither exists the bare name is
// returned so the caller's availability check reports it as missing.
func ResolveTool(name string) string {
	if path, err := exec.LookPath(name); err == nil {
		return path
	}
	execPath, err := os.Executable()
	if err == nil {
		local := filepath.Join(filepath.Dir(execPath), name)
		if runtime.GOOS == "windows" {
			local += ".exe"
		}
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}
	return name
}

// CleanPartials removes yt-dlp leftovers from dir and returns the removed paths.
func CleanPartials(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	var removed []string
	for _, pattern := range partialPatterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return removed, err
		}
		for _, match := range matches {
			if err := os.RemoveAll(match); err != nil {
				return removed, err
			}
			removed = append(removed, match)
		}
	}
	return removed, nil
}
