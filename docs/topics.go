// Package docs embeds the user documentation shown by the topic command.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.md
var pages embed.FS

// GetTopic returns the markdown content of one documentation topic.
// The special topic "*" expands to every topic.
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		topics, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		return GetTopics(topics...)
	}

	content, err := pages.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics concatenates the content of the given topics, "*" included.
func GetTopics(topics ...string) (string, error) {
	var b strings.Builder
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// GetAllTopics lists the available topics in lexical order. The readme is
// the command's default output and is not a topic of its own.
func GetAllTopics() ([]string, error) {
	matches, err := fs.Glob(pages, "*.md")
	if err != nil {
		return nil, err
	}
	topics := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSuffix(m, ".md")
		if name == "readme" {
			continue
		}
		topics = append(topics, name)
	}
	return topics, nil
}
