package publisher

import (
	_ "crypto/sha256"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/opencontainers/go-digest"
	"github.com/savaki/asset-publisher/internal/errors"
)

// ObjectKey returns the content-addressed key an artifact is uploaded to:
// assets/{id}/{digest}.json. The .json suffix is fixed regardless of content.
func ObjectKey(id, digestHex string) string {
	return fmt.Sprintf("assets/%s/%s.json", id, digestHex)
}

// KeyParameterValue returns the value recorded for an asset's key parameter.
// The || marker after the id segment is consumed downstream and must be kept
// verbatim.
func KeyParameterValue(id, digestHex string) string {
	return fmt.Sprintf("assets/%s/||%s.json", id, digestHex)
}

// Digest reads the whole file at path and returns its SHA-256 digest as
// lowercase hex
func Digest(fs billy.Filesystem, path string) (string, error) {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", errors.ErrArtifactNotFound, path)
		}
		return "", fmt.Errorf("failed to read artifact %s: %w", path, err)
	}
	return digest.SHA256.FromBytes(data).Encoded(), nil
}
