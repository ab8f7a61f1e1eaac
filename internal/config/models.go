package config

// SheetsConfig represents the configuration for the Google Sheets store
type SheetsConfig struct {
	SpreadsheetID   string
	CredentialsFile string
	ContactsTab     string
	StagingTab      string
	ValidationTab   string
	HistoryTab      string
	PatternsTab     string
}

// HunterConfig represents the configuration for the Hunter verifier API
type HunterConfig struct {
	APIKey  string
	BaseURL string
}

// LedgerConfig represents the configuration for the verification history ledger
type LedgerConfig struct {
	Backend    string
	SQLitePath string
	MySQLDSN   string
}

// GetSheets returns the Google Sheets configuration
func (c *Config) GetSheets() SheetsConfig {
	return SheetsConfig{
		SpreadsheetID:   c.GetString("sheets.spreadsheet_id"),
		CredentialsFile: c.GetString("sheets.credentials_file"),
		ContactsTab:     c.GetString("sheets.contacts_tab"),
		StagingTab:      c.GetString("sheets.staging_tab"),
		ValidationTab:   c.GetString("sheets.validation_tab"),
		HistoryTab:      c.GetString("sheets.history_tab"),
		PatternsTab:     c.GetString("sheets.patterns_tab"),
	}
}

// GetHunter returns the Hunter API configuration
func (c *Config) GetHunter() HunterConfig {
	return HunterConfig{
		APIKey:  c.GetString("hunter.api_key"),
		BaseURL: c.GetString("hunter.base_url"),
	}
}

// GetLedger returns the history ledger configuration
func (c *Config) GetLedger() LedgerConfig {
	return LedgerConfig{
		Backend:    c.GetString("ledger.backend"),
		SQLitePath: c.GetString("ledger.sqlite_path"),
		MySQLDSN:   c.GetString("ledger.mysql_dsn"),
	}
}
