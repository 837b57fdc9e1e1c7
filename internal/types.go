package internal

type ProjectLinks struct {
	Logo     string `json:"logo"`
	Homepage string `json:"homepage"`
	Twitter  string `json:"twitter"`
	Github   string `json:"github"`
}

// Project is one row's normalized output document.
type Project struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	Links       ProjectLinks `json:"links"`
}

type TypeGroup struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Projects []string `json:"projects"`
}

// SectorMap is the aggregated per-sector index document.
type SectorMap struct {
	Sector string      `json:"sector"`
	Types  []TypeGroup `json:"types"`
}

type RunRecord struct {
	ID              int
	CSVPath         string
	OutputDir       string
	Projects        int
	Sectors         int
	LogosDownloaded int
	DurationMs      int64
	CreatedAt       string
}

type RunProject struct {
	ProjectID string
	Name      string
	Sector    string
	Type      string
}
