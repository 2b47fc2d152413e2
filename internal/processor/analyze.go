package processor

import (
	"bytes"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
)

const (
	categoryGPS        = "GPS"
	categoryDevice     = "Device Model"
	categoryTimestamp  = "Timestamp"
	categoryIdentifier = "Serial"
)

var exifPrefix = []byte("Exif\x00\x00")

// analyzeExif groups the privacy-relevant tags of an APP1 Exif block into
// categories. Values are "TagName=formatted value" entries.
func analyzeExif(block []byte) ([]ScanDetail, error) {
	if len(block) == 0 {
		return nil, nil
	}

	tags, _, err := exif.GetFlatExifData(bytes.TrimPrefix(block, exifPrefix), nil)
	if err != nil {
		if errorsIsNoExif(err) {
			return nil, nil
		}
		return nil, err
	}

	grouped := map[string][]string{}
	for _, tag := range tags {
		name := tag.TagName
		category := ""
		switch {
		case strings.HasPrefix(name, "GPS") || strings.Contains(tag.IfdPath, "GPS"):
			category = categoryGPS
		case name == "Make" || name == "Model" || name == "CameraModelName" || name == "LensModel":
			category = categoryDevice
		case name == "DateTimeOriginal" || name == "DateTimeDigitized" || name == "DateTime":
			category = categoryTimestamp
		case strings.Contains(strings.ToLower(name), "serial"):
			category = categoryIdentifier
		default:
			continue
		}
		grouped[category] = append(grouped[category], name+"="+tag.Formatted)
	}

	var details []ScanDetail
	for _, category := range []string{categoryGPS, categoryDevice, categoryTimestamp, categoryIdentifier} {
		if values := grouped[category]; len(values) > 0 {
			details = append(details, ScanDetail{Category: category, Values: values})
		}
	}
	return details, nil
}

func errorsIsNoExif(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "no exif")
}
