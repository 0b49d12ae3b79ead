package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/revlog-project/revlog/pkg/model"
)

// parseChanges turns --file name=path and --remove name flags into the
// change list for one revision. File contents are read whole; a path of
// "-" reads stdin.
func parseChanges(fileFlags, removeFlags []string) ([]model.FileChange, error) {
	var changes []model.FileChange

	for _, spec := range fileFlags {
		name, path, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --file %q (want name=path)", spec)
		}
		var (
			data []byte
			err  error
		)
		if path == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		changes = append(changes, model.FileChange{Filename: name, Document: string(data)})
	}

	for _, name := range removeFlags {
		changes = append(changes, model.FileChange{Filename: name, Removed: true})
	}
	return changes, nil
}
