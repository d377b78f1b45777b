// Package importer picks up TSV files dropped into an inbox directory and creates
// records from them.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/glekoz/rvdesk/internal/models"
	"github.com/glekoz/rvdesk/internal/service"
	"github.com/glekoz/rvdesk/pkg/logger"
)

var ErrInvalidFileFormat = errors.New("header does not match any known layout")

const batchSize = 100

type ServiceAPI interface {
	CreateNotice(ctx context.Context, in service.NoticeInput) (models.Notice, error)
	CreateEquipment(ctx context.Context, in service.EquipmentInput) (models.Equipment, error)
	CreatePart(ctx context.Context, in service.PartInput) (models.Part, error)
	CreateInspectionLog(ctx context.Context, in service.InspectionInput) (models.InspectionLog, error)
	CreateOperationLog(ctx context.Context, in service.OperationInput) (models.OperationLog, error)
	RecordImportFailure(ctx context.Context, filename, reason string) models.ImportFailure
}

type Config struct {
	Dir          string
	PollInterval time.Duration
	MaxWorkers   int
	FileTimeout  time.Duration
}

type Importer struct {
	SourcePath    string
	CompletedPath string
	ErrorPath     string
	PollInterval  time.Duration
	MaxWorkers    int
	FileTimeout   time.Duration

	svc       ServiceAPI
	logger    *slog.Logger
	parsers   []*Parser
	semaphore chan struct{}

	filesInProgress map[string]bool
	fipMutex        sync.Mutex
}

func New(cfg Config, svc ServiceAPI, log *slog.Logger) (*Importer, error) {
	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve inbox dir: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("inbox dir doesn't exist: %s", dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("inbox path is not a dir: %s", dir)
	}
	completedPath := filepath.Join(dir, "completed")
	if err := os.MkdirAll(completedPath, 0755); err != nil {
		return nil, err
	}
	errorPath := filepath.Join(dir, "errors")
	if err := os.MkdirAll(errorPath, 0755); err != nil {
		return nil, err
	}
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.FileTimeout <= 0 {
		cfg.FileTimeout = 5 * time.Minute
	}

	return &Importer{
		SourcePath:    dir,
		CompletedPath: completedPath,
		ErrorPath:     errorPath,
		PollInterval:  cfg.PollInterval,
		MaxWorkers:    cfg.MaxWorkers,
		FileTimeout:   cfg.FileTimeout,

		svc:       svc,
		logger:    log,
		parsers:   Parsers(),
		semaphore: make(chan struct{}, cfg.MaxWorkers),

		filesInProgress: make(map[string]bool, cfg.MaxWorkers),
	}, nil
}

// Run processes files until ctx is done, at most MaxWorkers at a time.
func (im *Importer) Run(ctx context.Context) {
	im.logger.InfoContext(ctx, "importer is running",
		"dir", im.SourcePath, "pollInterval", im.PollInterval, "maxWorkers", im.MaxWorkers)

	wg := &sync.WaitGroup{}
	for filename := range im.streamFiles(ctx) {
		im.semaphore <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					im.logger.Error("panic recovered in file processing", "file", filename, "panic", r)
				}
				<-im.semaphore
				wg.Done()
			}()
			im.handle(ctx, filename)
		}()
	}
	wg.Wait()
}

func (im *Importer) handle(ctx context.Context, filename string) {
	fileCtx, cancel := context.WithTimeout(ctx, im.FileTimeout)
	defer cancel()
	fileCtx = logger.WithDetails(fileCtx, "file", filename)

	n, procErr := im.ProcessFile(fileCtx, filename)

	// если файл не удалось переместить, он остаётся в мапе и повторно не берётся
	dest := im.CompletedPath
	if procErr != nil {
		im.svc.RecordImportFailure(fileCtx, filename, procErr.Error())
		dest = im.ErrorPath
	}
	if err := move(im.SourcePath, dest, filename); err != nil {
		im.logger.ErrorContext(fileCtx, "failed to move file", "to", dest, "error", err)
		return
	}

	im.fipMutex.Lock()
	delete(im.filesInProgress, filename)
	im.fipMutex.Unlock()

	if procErr == nil {
		im.logger.InfoContext(fileCtx, "file imported", "records", n)
	}
}

// ProcessFile creates a record for every line of filename and returns how many were
// created. The first bad line stops the file; records created before it stay.
func (im *Importer) ProcessFile(ctx context.Context, filename string) (int, error) {
	streamCtx, stop := context.WithCancel(ctx)
	defer stop()
	batches, err := im.streamTSV(streamCtx, filename)
	if err != nil {
		return 0, err
	}

	var (
		created int
		critErr error
	)
	for batch := range batches {
		if critErr != nil {
			continue
		}
		if batch.Err != nil {
			critErr = batch.Err
			stop()
			continue
		}
		ctx = logger.WithEntity(ctx, string(batch.Parser.Entity()))
		for i, line := range batch.Records {
			if err := ctx.Err(); err != nil {
				critErr = err
				break
			}
			if err := batch.Parser.parse(ctx, im.svc, line); err != nil {
				critErr = fmt.Errorf("line %d: %w", batch.FirstLine+i, err)
				stop()
				break
			}
			created++
		}
	}
	if critErr == nil {
		critErr = ctx.Err()
	}
	return created, critErr
}

type StringLineBatch struct {
	Parser    *Parser
	Records   [][]string
	FirstLine int
	Err       error
}

func (im *Importer) streamTSV(ctx context.Context, filename string) (<-chan StringLineBatch, error) {
	file, err := os.Open(filepath.Join(im.SourcePath, filename))
	if err != nil {
		return nil, err
	}
	out := make(chan StringLineBatch)

	send := func(b StringLineBatch) bool {
		select {
		case <-ctx.Done():
			return false
		case out <- b:
			return true
		}
	}

	go func() {
		defer func() {
			if err := file.Close(); err != nil {
				im.logger.ErrorContext(ctx, "close file", "error", err)
			}
			close(out)
		}()

		reader := csv.NewReader(file)
		reader.Comma = '\t'
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		hs, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			send(StringLineBatch{Err: fmt.Errorf("read header: %w", err)})
			return
		}
		if len(hs) > 0 {
			hs[0] = strings.TrimPrefix(hs[0], "\ufeff")
		}
		parser, ok := detect(im.parsers, hs)
		if !ok {
			send(StringLineBatch{Err: ErrInvalidFileFormat})
			return
		}

		// строка 1 - заголовок
		lineNo := 2
		batch := StringLineBatch{Parser: parser, FirstLine: lineNo, Records: make([][]string, 0, batchSize)}
		for {
			line, err := reader.Read()
			if err != nil {
				if errors.Is(err, io.EOF) {
					if len(batch.Records) > 0 {
						send(batch)
					}
					return
				}
				send(StringLineBatch{Err: fmt.Errorf("line %d: %w", lineNo, err)})
				return
			}
			lineNo++
			batch.Records = append(batch.Records, line)
			if len(batch.Records) == batchSize {
				if !send(batch) {
					return
				}
				// новый срез, старый уже отдан потребителю
				batch = StringLineBatch{Parser: parser, FirstLine: lineNo, Records: make([][]string, 0, batchSize)}
			}
		}
	}()

	return out, nil
}

// streamFiles отдаёт имена .tsv файлов из входящей директории. Директория
// пересканируется по событию fsnotify или по таймеру, если события потерялись.
func (im *Importer) streamFiles(ctx context.Context) <-chan string {
	filesChan := make(chan string, im.MaxWorkers)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				im.logger.Error("panic recovered in streamFiles", "panic", r)
			}
			close(filesChan)
		}()

		var events <-chan fsnotify.Event
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			im.logger.Warn("fsnotify unavailable, polling only", "error", err)
		} else {
			defer watcher.Close()
			if err := watcher.Add(im.SourcePath); err != nil {
				im.logger.Warn("watch inbox", "error", err)
			} else {
				events = watcher.Events
			}
		}

		ticker := time.NewTicker(im.PollInterval)
		defer ticker.Stop()

		for {
			files, err := im.scanDir()
			if err != nil {
				im.logger.Error("read inbox", "error", err)
				return
			}
			for _, f := range files {
				if !im.claim(f) {
					continue
				}
				select {
				case <-ctx.Done():
					return
				case filesChan <- f:
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			case _, ok := <-events:
				if !ok {
					events = nil
				}
			}
		}
	}()
	return filesChan
}

func (im *Importer) claim(filename string) bool {
	im.fipMutex.Lock()
	defer im.fipMutex.Unlock()
	if im.filesInProgress[filename] {
		return false
	}
	im.filesInProgress[filename] = true
	return true
}

func (im *Importer) scanDir() ([]string, error) {
	entries, err := os.ReadDir(im.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".tsv") {
			continue
		}
		files = append(files, name)
	}
	return files, nil
}

func move(from, to, filename string) error {
	if err := os.Rename(filepath.Join(from, filename), filepath.Join(to, filename)); err != nil {
		return fmt.Errorf("move file: %w", err)
	}
	return nil
}
