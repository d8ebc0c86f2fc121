package audio

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/tcolgate/mp3"
)

// TrackInfo is the metadata probed from a downloaded audio asset. It backs
// the MetadataReady event for the real-audio transport and the player header.
type TrackInfo struct {
	DurationSeconds float64
	Title           string
	Artist          string
}

// ProbeFile reads the duration and tags of a local audio file. Duration is
// computed by walking MP3 frames; tags are best-effort and may be empty.
func ProbeFile(path string) (TrackInfo, error) {
	info := TrackInfo{}

	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		duration, err := computeMP3Duration(path)
		if err != nil {
			return TrackInfo{}, err
		}
		info.DurationSeconds = duration
	}

	info.Title, info.Artist = readTags(path)
	if info.Title == "" {
		info.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return info, nil
}

func readTags(path string) (string, string) {
	f, err := os.Open(path)
	if err != nil {
		return "", ""
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return "", ""
	}
	return strings.TrimSpace(meta.Title()), strings.TrimSpace(meta.Artist())
}

func computeMP3Duration(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	decoder := mp3.NewDecoder(f)
	var frame mp3.Frame
	var skipped int
	var total float64

	for {
		err := decoder.Decode(&frame, &skipped)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, err
		}
		total += frame.Duration().Seconds()
	}

	return total, nil
}
