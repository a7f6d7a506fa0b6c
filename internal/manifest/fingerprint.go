package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// Fingerprint computes a stable hash over the workspace manifest and all
// project manifests, in workspace order. The graph generator stamps it into
// the persisted graph so a loaded graph can be recognized as stale.
func Fingerprint(ws *Workspace, projects []*Project) (string, error) {
	// Normalized representation for hashing; field order is fixed by the
	// struct so the hash is reproducible for identical inputs.
	hashInput := struct {
		Workspace *Workspace `json:"workspace"`
		Projects  []*Project `json:"projects"`
	}{
		Workspace: ws,
		Projects:  projects,
	}

	data, err := json.Marshal(hashInput)
	if err != nil {
		return "", fmt.Errorf("marshal for fingerprint: %w", err)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}
