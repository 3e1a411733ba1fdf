package config

import (
	"github.com/spf13/viper"

	"github.com/Veraticus/invoice-advisor/internal/common"
	"github.com/Veraticus/invoice-advisor/internal/sheets"
)

// LoadSheetsConfig loads Google Sheets configuration. Values from v (config
// file or AFI_ env vars) win over GOOGLE_SHEETS_* variables, which win over
// the defaults.
func LoadSheetsConfig(v *viper.Viper) (sheets.Config, error) {
	cfg := sheets.DefaultConfig()

	cfg.ServiceAccountPath = ExpandPath(v.GetString("sheets.service_account_path"))
	cfg.TokenFile = ExpandPath(v.GetString("sheets.token_file"))
	cfg.ClientID = v.GetString("sheets.client_id")
	cfg.ClientSecret = v.GetString("sheets.client_secret")
	cfg.RefreshToken = v.GetString("sheets.refresh_token")
	cfg.SpreadsheetID = v.GetString("sheets.spreadsheet_id")
	if name := v.GetString("sheets.spreadsheet_name"); name != "" {
		cfg.SpreadsheetName = name
	}
	if name := v.GetString("sheets.sheet_name"); name != "" {
		cfg.SheetName = name
	}
	if v.IsSet("sheets.formatting") {
		cfg.EnableFormatting = v.GetBool("sheets.formatting")
	}

	cfg.LoadFromEnv()
	cfg.ServiceAccountPath = ExpandPath(cfg.ServiceAccountPath)

	if err := cfg.Validate(); err != nil {
		return sheets.Config{}, common.NewConfigurationError("sheets", err)
	}
	return cfg, nil
}
