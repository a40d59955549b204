// Package ir reads just enough of an OpenVINO IR model description (the
// .xml side of an .xml/.bin pair) to recover the model's fixed batch size.
// Execution of the model is the inference engine's business, not ours.
package ir

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type net struct {
	XMLName xml.Name `xml:"net"`
	Layers  struct {
		Layer []layer `xml:"layer"`
	} `xml:"layers"`
}

type layer struct {
	Name   string `xml:"name,attr"`
	Type   string `xml:"type,attr"`
	Output *struct {
		Port []struct {
			Dim []string `xml:"dim"`
		} `xml:"port"`
	} `xml:"output"`
}

// DefaultBatchSize parses the IR xml at path and returns the first output
// dimension of the first layer that declares one. For IR models this is
// the batch dimension the network was frozen with.
func DefaultBatchSize(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read model description %s: %w", path, err)
	}
	var n net
	if err := xml.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("invalid OpenVINO IR xml %s: %w", path, err)
	}
	for _, l := range n.Layers.Layer {
		if l.Output == nil {
			continue
		}
		for _, p := range l.Output.Port {
			if len(p.Dim) == 0 {
				continue
			}
			batch, err := strconv.Atoi(strings.TrimSpace(p.Dim[0]))
			if err != nil {
				return 0, fmt.Errorf("invalid OpenVINO IR xml %s: batch dim %q of layer %s is not an integer", path, p.Dim[0], l.Name)
			}
			if batch <= 0 {
				return 0, fmt.Errorf("invalid OpenVINO IR xml %s: layer %s has non-positive batch dim %d", path, l.Name, batch)
			}
			return batch, nil
		}
	}
	return 0, fmt.Errorf("invalid OpenVINO IR xml %s: no layer output dims found, please check your model path", path)
}

// WeightPath derives the .bin weight file path from the IR xml path, the
// same way the engine resolves it: replace everything after the last dot.
func WeightPath(modelPath string) (string, error) {
	i := strings.LastIndex(modelPath, ".")
	if i < 0 {
		return "", fmt.Errorf("model path %s has no extension to derive a weight path from", modelPath)
	}
	return modelPath[:i] + ".bin", nil
}
