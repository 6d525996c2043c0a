package config

// FormatCheckID formats a checker identifier based on the given format.
// Falls back to ID if name is empty.
func FormatCheckID(format CheckFormat, checkID, checkName string) string {
	if checkName == "" {
		return checkID
	}

	switch format {
	case CheckFormatID:
		return checkID
	case CheckFormatCombined:
		return checkID + "/" + checkName
	case CheckFormatName:
		return checkName
	default:
		return checkName
	}
}

// IsValid returns true if the output format is supported.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON:
		return true
	default:
		return false
	}
}
