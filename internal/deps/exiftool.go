package deps

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ResolveExifTool reports how the configured exiftool command resolves.
//
// The configured value may be a bare command name looked up via PATH or an
// explicit path. Explicit paths are checked directly so status output points
// at the file the workflow will actually execute.
func ResolveExifTool(command string) Status {
	result := Status{
		Name:        "ExifTool",
		Description: "Required for reading and writing image metadata",
	}

	command = strings.TrimSpace(command)
	if command == "" {
		result.Detail = "command not configured"
		return result
	}
	result.Command = command

	if strings.ContainsRune(command, os.PathSeparator) {
		info, err := os.Stat(command)
		switch {
		case err != nil:
			result.Detail = fmt.Sprintf("binary %q not found", command)
		case !isExecutable(info):
			result.Detail = fmt.Sprintf("%q is not an executable file", command)
		default:
			result.Available = true
		}
		return result
	}

	resolved, err := exec.LookPath(command)
	if err != nil {
		result.Detail = fmt.Sprintf("binary %q not found", command)
		return result
	}
	result.Command = resolved
	result.Available = true
	return result
}

func isExecutable(info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
