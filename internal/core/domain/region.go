package domain

// Region is static reference data: an administrative region with a stable
// key and names in the three supported languages.
type Region struct {
	ID       int64
	Key      string
	NameUz   string
	NameRu   string
	NameEn   string
	IsActive bool
	Order    int
}

// Name returns the region name in the given language, falling back to Uzbek.
func (r *Region) Name(lang Language) string {
	switch lang {
	case LangRu:
		return r.NameRu
	case LangEn:
		return r.NameEn
	default:
		return r.NameUz
	}
}

// District belongs to a region, identified by (region key, district key).
type District struct {
	ID        int64
	RegionKey string
	Key       string
	NameUz    string
	NameRu    string
	NameEn    string
	IsActive  bool
	Order     int
}

// Name returns the district name in the given language, falling back to Uzbek.
func (d *District) Name(lang Language) string {
	switch lang {
	case LangRu:
		return d.NameRu
	case LangEn:
		return d.NameEn
	default:
		return d.NameUz
	}
}
