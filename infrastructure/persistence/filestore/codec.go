package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	pkgerrors "stockledger/pkg/errors"
)

const recordExt = ".json"

// recordPath builds the file path for a record id inside dir
func recordPath(dir string, id int64) string {
	return filepath.Join(dir, strconv.FormatInt(id, 10)+recordExt)
}

// parseRecordID extracts the record id from a filename. Names that are not
// "<integer>.json" are not records and report false.
func parseRecordID(name string) (int64, bool) {
	base, ok := strings.CutSuffix(name, recordExt)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(base, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// writeRecord persists v as JSON at path via a uniquely named temp file and a
// rename, so a crash mid-write can never leave a truncated record where a
// scan would pick it up.
func writeRecord(path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return pkgerrors.NewStorageError("encode record", err)
	}

	tmp := path + ".tmp-" + uuid.NewString()
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return pkgerrors.NewStorageError("write record", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return pkgerrors.NewStorageError("commit record", err)
	}
	return nil
}

// readRecord decodes the JSON record at path into v. Unknown fields are
// tolerated. The boolean is false when the file is missing or unreadable as a
// record; read paths treat that as "no record", never as a hard failure.
func readRecord(path string, v interface{}) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false
	}
	return true
}
