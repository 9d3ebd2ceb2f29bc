package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

var (
	funcCount = make(map[string]int)
	countLock sync.Mutex
)

// ValidateSnapshot compares obj, as indented JSON, against testdata/<func>-<n>.json
// A missing snapshot file is written instead of compared
func ValidateSnapshot(t *testing.T, obj interface{}, depth int, msgAndArgs ...interface{}) {
	t.Helper()

	objJSON, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatalf("could not marshal snapshot: %v", err)
	}

	validate(t, string(objJSON), "json", depth+1, msgAndArgs...)
}

// ValidateText compares text against testdata/<func>-<n>.<ext>
func ValidateText(t *testing.T, text string, ext string, depth int, msgAndArgs ...interface{}) {
	t.Helper()
	validate(t, text, ext, depth+1, msgAndArgs...)
}

func validate(t *testing.T, actual string, ext string, depth int, msgAndArgs ...interface{}) {
	t.Helper()

	filename := snapshotFile(depth+1, ext)
	expects, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			create(t, filename, actual)
			return
		}

		t.Fatalf("could not read snapshot %s: %v", filename, err)
	}

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(actual, "\n"), msgAndArgs...) {
		t.Logf("snapshot %s", filename)
	}
}

func snapshotFile(skip int, ext string) string {
	pc, _, _, _ := runtime.Caller(skip + 1)
	funcName := filepath.Base(runtime.FuncForPC(pc).Name())

	countLock.Lock()
	call := funcCount[funcName]
	funcCount[funcName] = call + 1
	countLock.Unlock()

	return filepath.Join("testdata", fmt.Sprintf("%s-%d.%s", funcName, call, ext))
}

func create(t *testing.T, filename string, contents string) {
	t.Helper()

	logrus.WithField("filename", filename).Info("writing snapshot file")
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		t.Fatalf("could not create snapshot directory: %v", err)
	}

	if err := os.WriteFile(filename, []byte(strings.Trim(contents, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("could not write snapshot %s: %v", filename, err)
	}
}
