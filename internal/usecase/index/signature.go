package index

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/shopsense/shopsense/internal/domain/catalog"
)

// Signature fingerprints the products table content together with the
// embedding configuration. A persisted snapshot whose signature matches is
// current; anything else is stale and triggers a rebuild.
func Signature(products *catalog.ProductTable, model string, dimensions int) string {
	h := sha256.New()
	h.Write(products.Canonical())
	fmt.Fprintf(h, "model=%s;dims=%d", model, dimensions)
	return hex.EncodeToString(h.Sum(nil))
}
