package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// YouTube fetches video transcripts by downloading subtitles with yt-dlp
type YouTube struct {
	cacheDir    string
	logger      *slog.Logger
	installOnce sync.Once
	installErr  error
}

// NewYouTube creates a transcript provider that stages subtitle files in cacheDir
func NewYouTube(cacheDir string, logger *slog.Logger) *YouTube {
	return &YouTube{
		cacheDir: cacheDir,
		logger:   logger,
	}
}

// ensureInstalled makes sure a yt-dlp binary is available
func (yt *YouTube) ensureInstalled(ctx context.Context) error {
	yt.installOnce.Do(func() {
		_, yt.installErr = ytdlp.Install(ctx, nil)
	})
	if yt.installErr != nil {
		return fmt.Errorf("installing yt-dlp: %w", yt.installErr)
	}
	return nil
}

// Transcript downloads the English subtitles of a video and returns them as timed segments
func (yt *YouTube) Transcript(ctx context.Context, videoID string) ([]Segment, error) {
	if err := yt.ensureInstalled(ctx); err != nil {
		return nil, err
	}
	if err := EnsureDirs(yt.cacheDir); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	// subtitles only live for the duration of one request
	workDir, err := os.MkdirTemp(yt.cacheDir, "subs-")
	if err != nil {
		return nil, fmt.Errorf("creating subtitle directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			yt.logger.Warn("failed to remove subtitle directory", "dir", workDir, "error", err)
		}
	}()

	dl := ytdlp.New().
		WriteSubs().
		WriteAutoSubs().
		SubLangs("en.*,en").
		ConvertSubs("srt").
		SkipDownload().
		Output(filepath.Join(workDir, "%(id)s"))

	yt.logger.Debug("downloading subtitles", "video_id", videoID)
	result, err := dl.Run(ctx, "https://www.youtube.com/watch?v="+videoID)
	if err != nil {
		if result != nil && strings.TrimSpace(result.Stderr) != "" {
			return nil, fmt.Errorf("yt-dlp failed: %w: %s", err, lastLine(result.Stderr))
		}
		return nil, fmt.Errorf("yt-dlp failed: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(workDir, "*.srt"))
	if err != nil || len(files) == 0 {
		return nil, errors.New("no subtitles available for this video")
	}
	// manual tracks ("id.en.srt") sort ahead of regional variants ("id.en-US.srt")
	sort.Strings(files)

	content, err := os.ReadFile(files[0])
	if err != nil {
		return nil, fmt.Errorf("reading subtitles: %w", err)
	}

	segments := removeDuplicates(parseSRT(string(content)))
	if len(segments) == 0 {
		return nil, errors.New("subtitle file contains no text")
	}
	return segments, nil
}

var (
	srtTimingRe = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2}[,.]\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2}[,.]\d{3})`)
	markupRe    = regexp.MustCompile(`<[^>]*>`)
)

// parseSRT extracts timed text segments from SRT content
func parseSRT(content string) []Segment {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var segments []Segment
	for block := range strings.SplitSeq(content, "\n\n") {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 3 {
			continue
		}

		m := srtTimingRe.FindStringSubmatch(strings.TrimSpace(lines[1]))
		if m == nil {
			continue
		}
		start, err := parseSRTTimestamp(m[1])
		if err != nil {
			continue
		}
		end, err := parseSRTTimestamp(m[2])
		if err != nil {
			continue
		}

		var text []string
		for _, line := range lines[2:] {
			line = strings.TrimSpace(markupRe.ReplaceAllString(line, ""))
			if line != "" {
				text = append(text, line)
			}
		}
		if len(text) == 0 {
			continue
		}

		segments = append(segments, Segment{
			Text:     strings.Join(text, " "),
			Start:    start,
			Duration: max(end-start, 0),
		})
	}
	return segments
}

// parseSRTTimestamp parses "HH:MM:SS,mmm"
func parseSRTTimestamp(ts string) (time.Duration, error) {
	ts = strings.Replace(ts, ",", ".", 1)
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", ts)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hours in %q: %w", ts, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in %q: %w", ts, err)
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in %q: %w", ts, err)
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds*float64(time.Second)).Round(time.Millisecond), nil
}

// removeDuplicates collapses the repeated and growing lines produced by rolling auto-captions
func removeDuplicates(segments []Segment) []Segment {
	result := make([]Segment, 0, len(segments))

	for _, seg := range segments {
		if n := len(result); n > 0 {
			last := &result[n-1]
			if strings.Contains(last.Text, seg.Text) {
				continue
			}
			if strings.HasPrefix(seg.Text, last.Text) {
				last.Text = seg.Text
				last.Duration = seg.Start + seg.Duration - last.Start
				continue
			}
		}
		result = append(result, seg)
	}

	return result
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
