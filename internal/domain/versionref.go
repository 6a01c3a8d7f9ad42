package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// VersionRef identifies the exact file version installed for a record.
// CurseForge refs are numeric file ids; Orbis refs are composite
// "versionId:fileIndex" strings. Exactly one form is populated.
type VersionRef struct {
	FileID    int64  // CurseForge file id
	VersionID string // Orbis version id
	FileIndex int    // Orbis: index within the version's file list
}

// NumericRef builds a CurseForge version reference.
func NumericRef(fileID int64) VersionRef {
	return VersionRef{FileID: fileID}
}

// CompositeRef builds an Orbis version reference.
func CompositeRef(versionID string, fileIndex int) VersionRef {
	return VersionRef{VersionID: versionID, FileIndex: fileIndex}
}

// IsZero reports whether neither form is populated.
func (r VersionRef) IsZero() bool {
	return r.FileID == 0 && r.VersionID == ""
}

// Equal compares two refs using the comparison rule of whichever form is
// populated: numeric id equality for CurseForge, composite equality for Orbis.
func (r VersionRef) Equal(other VersionRef) bool {
	if r.VersionID != "" || other.VersionID != "" {
		return r.VersionID == other.VersionID && r.FileIndex == other.FileIndex
	}
	return r.FileID == other.FileID
}

func (r VersionRef) String() string {
	if r.VersionID != "" {
		return r.VersionID + ":" + strconv.Itoa(r.FileIndex)
	}
	return strconv.FormatInt(r.FileID, 10)
}

// MarshalJSON writes the original wire forms: a JSON number for CurseForge
// file ids, a "versionId:fileIndex" JSON string for Orbis.
func (r VersionRef) MarshalJSON() ([]byte, error) {
	if r.VersionID != "" {
		return json.Marshal(r.VersionID + ":" + strconv.Itoa(r.FileIndex))
	}
	return json.Marshal(r.FileID)
}

// UnmarshalJSON accepts either wire form. A string without a ":" separator is
// kept as a composite ref with index 0 rather than rejected, since the
// registry document must stay loadable.
func (r *VersionRef) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*r = NumericRef(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("version ref must be a number or string: %s", string(data))
	}

	i := strings.LastIndex(s, ":")
	if i < 0 {
		*r = CompositeRef(s, 0)
		return nil
	}
	idx, err := strconv.Atoi(s[i+1:])
	if err != nil {
		*r = CompositeRef(s, 0)
		return nil
	}
	*r = CompositeRef(s[:i], idx)
	return nil
}
