package processor

import (
	"fmt"
	"strconv"
	"strings"
)

// buildInsights turns raw tag details into short human-readable findings.
func buildInsights(details []ScanDetail) []ScanInsight {
	if len(details) == 0 {
		return nil
	}

	tags := tagValues(details)
	var insights []ScanInsight

	if lat, lon, ok := coordinates(tags); ok {
		insights = append(insights, ScanInsight{
			Kind:    "Location",
			Message: fmt.Sprintf("Approx location: %.5f, %.5f (survives conversion)", lat, lon),
		})
	}

	if device := deviceName(tags); device != "" {
		msg := "Device: " + device
		if kind := deviceKind(strings.ToLower(device)); kind != "" {
			msg += " (" + kind + ")"
		}
		insights = append(insights, ScanInsight{Kind: "Device", Message: msg})
	}

	if ts := firstOf(tags, "DateTimeOriginal", "DateTimeDigitized", "DateTime"); ts != "" {
		// EXIF dates use colons in the date part: 2024:01:02 03:04:05.
		date, clock, _ := strings.Cut(ts, " ")
		formatted := strings.Replace(date, ":", "-", 2)
		if clock != "" {
			formatted += " " + clock
		}
		insights = append(insights, ScanInsight{Kind: "Timeline", Message: "Captured: " + formatted})
	}

	for key := range tags {
		if strings.Contains(strings.ToLower(key), "serial") {
			insights = append(insights, ScanInsight{Kind: "Identifier", Message: "Device serial numbers are present."})
			break
		}
	}

	return insights
}

func tagValues(details []ScanDetail) map[string]string {
	tags := make(map[string]string)
	for _, detail := range details {
		for _, entry := range detail.Values {
			key, value, ok := strings.Cut(entry, "=")
			key = strings.TrimSpace(key)
			if !ok || key == "" {
				continue
			}
			if _, seen := tags[key]; !seen {
				tags[key] = strings.TrimSpace(value)
			}
		}
	}
	return tags
}

func firstOf(tags map[string]string, keys ...string) string {
	for _, key := range keys {
		if v := tags[key]; v != "" {
			return v
		}
	}
	return ""
}

func coordinates(tags map[string]string) (float64, float64, bool) {
	lat, okLat := parseGPSCoordinate(tags["GPSLatitude"])
	lon, okLon := parseGPSCoordinate(tags["GPSLongitude"])
	if !okLat || !okLon {
		return 0, 0, false
	}
	if tags["GPSLatitudeRef"] == "S" {
		lat = -lat
	}
	if tags["GPSLongitudeRef"] == "W" {
		lon = -lon
	}
	return lat, lon, true
}

// parseGPSCoordinate reads degrees from "[d/1 m/1 s/100]", "d m s" or a
// plain decimal.
func parseGPSCoordinate(raw string) (float64, bool) {
	raw = strings.Trim(strings.TrimSpace(raw), "[]")
	parts := strings.Fields(raw)
	if len(parts) == 0 {
		return 0, false
	}

	var deg float64
	scale := 1.0
	for i, part := range parts {
		if i > 2 {
			break
		}
		v, ok := parseRational(part)
		if !ok {
			return 0, false
		}
		deg += v / scale
		scale *= 60
	}
	return deg, true
}

func parseRational(part string) (float64, bool) {
	num, den, isFraction := strings.Cut(strings.TrimSpace(part), "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	if !isFraction {
		return n, true
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

func deviceName(tags map[string]string) string {
	device := strings.TrimSpace(tags["Make"] + " " + tags["Model"])
	if device == "" {
		device = tags["CameraModelName"]
	}
	return device
}

func deviceKind(device string) string {
	contains := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(device, w) {
				return true
			}
		}
		return false
	}
	switch {
	case contains("iphone", "pixel", "galaxy", "android"):
		return "smartphone"
	case contains("ipad", "tablet"):
		return "tablet"
	case contains("gopro"):
		return "action camera"
	case contains("dji"):
		return "drone"
	case contains("canon", "nikon", "sony", "fujifilm", "panasonic", "olympus", "leica"):
		return "camera"
	default:
		return ""
	}
}
