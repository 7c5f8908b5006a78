package config

// Application constants
const (
	AppName    = "surveyclean"
	AppVersion = "1.0.0"

	// File Paths (relative to the base directory)
	DefaultLogsDir        = "logs"
	DefaultLogFile        = "logs/surveyclean.log"
	DefaultInputFile      = "data/raw/forms_responses.csv"
	DefaultCleanedCSV     = "data/cleaned/cleaned_student_data.csv"
	DefaultCleanedExcel   = "data/cleaned/cleaned_student_data.xlsx"
	DefaultReportFile     = "data/cleaned/cleaning_report.json"
	DefaultQuarantineFile = "data/cleaned/quarantined_comments.csv"

	// Spreadsheet sheet names
	CleanedSheetName = "Cleaned Student Data"
	ReportSheetName  = "Cleaning Report"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// Cleaning rules
	DefaultTimestampLayout = "2006-01-02 15:04:05"
	DefaultIDPrefix        = "STU"
	DefaultIDDigits        = 5
	DefaultMaxEditDistance = 2
	DefaultImputePrecision = 2

	// Spam heuristics
	DefaultMaxRepetitionRatio     = 0.6
	DefaultMinAlphaRatio          = 0.5
	DefaultMinRepetitionLength    = 5
	DefaultMinTokensForRepetition = 4
)

// DefaultSpamTokens are phrases that mark a comment as spam on sight.
// "this is spam" is the marker the survey export injects.
var DefaultSpamTokens = []string{
	"this is spam",
	"http://",
	"https://",
	"www.",
	"click here",
	"buy now",
	"free money",
	"subscribe to",
}
