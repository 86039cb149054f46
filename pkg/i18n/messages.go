package i18n

// Catalog keys used by the validation report.
const (
	KeySuccess             = "query.success"
	KeyFailure             = "query.failure"
	KeyWarning             = "query.warning"
	KeyExecutionSuccessful = "query.executionSuccessful"
	KeyExecutionFailed     = "query.executionFailed"
	KeyExecutionSkipped    = "query.executionSkipped"
	KeyExceptionGeneric    = "query.exception-generic"
)

var builtin = map[string]map[string]string{
	"en": {
		KeySuccess:             "Query successfully parsed",
		KeyFailure:             "Query parsing failed",
		KeyWarning:             "Warning",
		KeyExecutionSuccessful: "The query was executed successfully.",
		KeyExecutionFailed:     "The query could not be executed. The database reported: %s",
		KeyExecutionSkipped:    "The query modifies data and was not executed.",
		KeyExceptionGeneric:    "The query could not be parsed.",
		"query.exception-1001": "The query is empty.",
		"query.exception-1002": "The query contains a syntax error.",
		"query.exception-1003": "Only SELECT, INSERT, UPDATE and DELETE statements are supported.",
		"query.exception-1004": "The query text contains invalid characters.",
		"query.exception-1005": "A function is called with the wrong number of arguments.",
	},
	"de": {
		KeySuccess:             "Abfrage erfolgreich geparst",
		KeyFailure:             "Parsen der Abfrage fehlgeschlagen",
		KeyWarning:             "Warnung",
		KeyExecutionSuccessful: "Die Abfrage wurde erfolgreich ausgeführt.",
		KeyExecutionFailed:     "Die Abfrage konnte nicht ausgeführt werden. Die Datenbank meldete: %s",
		KeyExecutionSkipped:    "Die Abfrage ändert Daten und wurde nicht ausgeführt.",
		KeyExceptionGeneric:    "Die Abfrage konnte nicht geparst werden.",
		"query.exception-1001": "Die Abfrage ist leer.",
		"query.exception-1002": "Die Abfrage enthält einen Syntaxfehler.",
		"query.exception-1003": "Nur SELECT-, INSERT-, UPDATE- und DELETE-Anweisungen werden unterstützt.",
		"query.exception-1004": "Der Abfragetext enthält ungültige Zeichen.",
		"query.exception-1005": "Eine Funktion wird mit der falschen Anzahl von Argumenten aufgerufen.",
	},
}
