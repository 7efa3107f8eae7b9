package loader

import (
	"bufio"
	"io"
	"strings"

	"github.com/Kylepayen02/ABM-COVID/internal/infection"
	"github.com/Kylepayen02/ABM-COVID/internal/simerr"
)

// LoadAgeTable parses "<lo>-<hi> <probability>" lines into an
// infection.AgeTable. The tag argument (mortality/hospitalization/ICU) is
// used only in error messages -- selecting which of the sampler's three
// tables the result feeds is the caller's responsibility.
func LoadAgeTable(r io.Reader, tag string) (*infection.AgeTable, error) {
	var bands []infection.AgeBand
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		b, err := infection.ParseAgeLine(line)
		if err != nil {
			return nil, simerr.Wrap(simerr.ConfigError, err, "%s age-band file line %d", tag, lineNo)
		}
		bands = append(bands, b)
	}
	if err := scanner.Err(); err != nil {
		return nil, simerr.Wrap(simerr.ConfigError, err, "reading %s age-band file", tag)
	}
	table, err := infection.NewAgeTable(bands)
	if err != nil {
		return nil, simerr.Wrap(simerr.ConfigError, err, "%s age table", tag)
	}
	return table, nil
}
