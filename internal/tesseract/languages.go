package tesseract

import (
	"github.com/StephenKaylonChan/ocrkit/internal/engine"
)

// trainedData maps canonical language codes to Tesseract traineddata
// names. Script-family codes map to a representative traineddata set.
var trainedData = map[string]string{ //nolint:gochecknoglobals // Static mapping table
	"ch":          "chi_sim",
	"chinese_cht": "chi_tra",
	"en":          "eng",
	"japan":       "jpn",
	"korean":      "kor",
	"french":      "fra",
	"german":      "deu",
	"italian":     "ita",
	"spanish":     "spa",
	"portuguese":  "por",
	"russian":     "rus",
	"uk":          "ukr",
	"be":          "bel",
	"latin":       "lat",
	"arabic":      "ara",
	"fa":          "fas",
	"ug":          "uig",
	"hi":          "hin",
	"mr":          "mar",
	"ne":          "nep",
	"te":          "tel",
	"ka":          "kan",
	"ta":          "tam",
	"th":          "tha",
	"vi":          "vie",
	"ms":          "msa",
	"id":          "ind",
	"cyrillic":    "rus",
	"devanagari":  "hin",
}

// TrainedData resolves a configuration key to its traineddata name. The key
// language is already canonical, so a miss here means the binding table is
// out of sync with the config language table.
func TrainedData(key engine.Key) (string, error) {
	name, ok := trainedData[key.Lang]
	if !ok {
		return "", &engine.ConfigError{Key: key.Lang, Msg: "no traineddata mapping"}
	}
	return name, nil
}
