package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Region      string   `json:"region" yaml:"region" toml:"region"`
	ReportName  string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType  []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir         string   `json:"dir" yaml:"dir" toml:"dir"`
	EndpointURL string   `json:"endpoint_url" yaml:"endpoint_url" toml:"endpoint_url"`
	PathStyle   bool     `json:"path_style" yaml:"path_style" toml:"path_style"`
	Extended    bool     `json:"extended" yaml:"extended" toml:"extended"`
}
