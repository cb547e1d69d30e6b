package models

// PackageConfig describes a sellable bundle of PDF content items.
// Price is in minor currency units.
type PackageConfig struct {
	ID          string   `json:"id" yaml:"id"`
	Price       int      `json:"price" yaml:"price"`
	Items       []string `json:"items" yaml:"items"`
	Description string   `json:"description" yaml:"description"`
}

// Catalog is the immutable package lookup table, built once at startup.
type Catalog struct {
	packages map[string]PackageConfig
}

func NewCatalog(packages []PackageConfig) *Catalog {
	m := make(map[string]PackageConfig, len(packages))
	for _, p := range packages {
		m[p.ID] = p
	}
	return &Catalog{packages: m}
}

// Get returns a copy of the package, with its item list snapshotted so the
// caller cannot alias catalog state.
func (c *Catalog) Get(id string) (PackageConfig, error) {
	p, ok := c.packages[id]
	if !ok {
		return PackageConfig{}, ErrPackageNotFound
	}
	p.Items = append([]string(nil), p.Items...)
	return p, nil
}

func (c *Catalog) Len() int {
	return len(c.packages)
}
