package docinfo

import "strings"

const defaultSeparator = "---"

// Info holds operation metadata extracted from handler documentation text.
// Empty fields mean the corresponding section was absent.
type Info struct {
	Summary     string
	Description string
}

// Empty reports whether no information was extracted.
func (i Info) Empty() bool {
	return i.Summary == "" && i.Description == ""
}

// InfoOption customises LoadInfo behaviour.
type InfoOption func(*infoConfig)

type infoConfig struct {
	separator    string
	useSeparator bool
}

// WithSeparator overrides the separator line that terminates the description
// section. Lines at or after the first line starting with the separator are
// discarded.
func WithSeparator(sep string) InfoOption {
	return func(cfg *infoConfig) {
		cfg.separator = sep
		cfg.useSeparator = sep != ""
	}
}

// WithoutSeparator disables separator detection so the entire body after the
// summary becomes the description.
func WithoutSeparator() InfoOption {
	return func(cfg *infoConfig) {
		cfg.useSeparator = false
	}
}

// LoadInfo extracts a summary and a description from handler documentation
// text. The first paragraph becomes the summary. The remaining paragraphs, up
// to a separator line (default "---"), become the description; anything after
// the separator is discarded. Empty or whitespace-only input yields a zero
// Info.
func LoadInfo(doc string, options ...InfoOption) Info {
	cfg := infoConfig{
		separator:    defaultSeparator,
		useSeparator: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	lines := trimDocText(doc)
	if len(lines) == 0 {
		return Info{}
	}

	if cfg.useSeparator {
		for i, line := range lines {
			if strings.HasPrefix(strings.TrimLeft(line, " \t"), cfg.separator) {
				lines = lines[:i]
				break
			}
		}
	}

	// The summary runs until the first blank line.
	cut := len(lines)
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			cut = i
			break
		}
	}

	info := Info{
		Summary: strings.Join(lines[:cut], "\n"),
	}
	if cut < len(lines) {
		info.Description = strings.Trim(strings.Join(lines[cut+1:], "\n"), "\n")
	}
	return info
}

// trimDocText normalises documentation text: the first line is stripped, the
// common leading indentation of the remaining lines is removed, and leading
// and trailing blank lines are dropped.
func trimDocText(doc string) []string {
	if strings.TrimSpace(doc) == "" {
		return nil
	}

	lines := strings.Split(strings.ReplaceAll(doc, "\t", "    "), "\n")

	indent := -1
	for _, line := range lines[1:] {
		stripped := strings.TrimLeft(line, " ")
		if stripped == "" {
			continue
		}
		margin := len(line) - len(stripped)
		if indent < 0 || margin < indent {
			indent = margin
		}
	}

	trimmed := []string{strings.TrimSpace(lines[0])}
	if indent > 0 {
		for _, line := range lines[1:] {
			if len(line) > indent {
				line = line[indent:]
			} else {
				line = strings.TrimLeft(line, " ")
			}
			trimmed = append(trimmed, strings.TrimRight(line, " "))
		}
	} else {
		for _, line := range lines[1:] {
			trimmed = append(trimmed, strings.TrimRight(line, " "))
		}
	}

	for len(trimmed) > 0 && trimmed[len(trimmed)-1] == "" {
		trimmed = trimmed[:len(trimmed)-1]
	}
	for len(trimmed) > 0 && trimmed[0] == "" {
		trimmed = trimmed[1:]
	}
	return trimmed
}
