package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	slugPattern       = regexp.MustCompile(`"banana_key"\s*:\s*"([a-z0-9-]+)"`)
	confidencePattern = regexp.MustCompile(`"confidence"\s*:\s*([0-9]+(?:\.[0-9]+)?)`)
	ErrParseFailed    = errors.New("parse_failed")
)

// Detection is the parsed model verdict. NoBanana is set when the model
// explicitly reports that the image contains no banana.
type Detection struct {
	BananaKey  string
	Confidence float64
	NoBanana   bool
}

// ParseDetection extracts the detection verdict from raw model output.
// It first tries the strict JSON format the prompt asks for, stripping an
// optional markdown code fence, and falls back to field-level regexes when
// the surrounding JSON is malformed.
func ParseDetection(text string) (Detection, error) {
	cleaned := stripFence(text)

	var strict struct {
		BananaKey  string  `json:"banana_key"`
		Confidence float64 `json:"confidence"`
		Reason     string  `json:"reason"`
	}
	if err := json.Unmarshal([]byte(cleaned), &strict); err == nil {
		if strict.Reason == "no_banana_detected" {
			return Detection{NoBanana: true}, nil
		}
		if strict.BananaKey != "" {
			return Detection{BananaKey: strict.BananaKey, Confidence: clampConfidence(strict.Confidence)}, nil
		}
	}

	if strings.Contains(cleaned, "no_banana_detected") {
		return Detection{NoBanana: true}, nil
	}

	// fallback: pick the fields out of broken JSON
	m := slugPattern.FindStringSubmatch(cleaned)
	if len(m) < 2 {
		return Detection{}, fmt.Errorf("%w: no banana_key found", ErrParseFailed)
	}
	d := Detection{BananaKey: m[1]}
	if c := confidencePattern.FindStringSubmatch(cleaned); len(c) >= 2 {
		v, err := strconv.ParseFloat(c[1], 64)
		if err != nil {
			return Detection{}, fmt.Errorf("%w: %v", ErrParseFailed, err)
		}
		d.Confidence = clampConfidence(v)
	}
	return d, nil
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
