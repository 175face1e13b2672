package server

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ironsheep/vision-director/internal/config"
	"github.com/ironsheep/vision-director/internal/vision"
)

// pipeline is a registered vision processor. mu serializes frames, since
// monitors carry state from one frame to the next.
type pipeline struct {
	mu sync.Mutex

	id      string
	name    string
	source  string
	created time.Time
	frames  int
	proc    vision.Processor
}

// PipelineInfo describes a registered pipeline.
type PipelineInfo struct {
	ID      string    `json:"pipeline_id"`
	Name    string    `json:"name"`
	Source  string    `json:"source"`
	Ambient bool      `json:"ambient"`
	Halted  bool      `json:"halted"`
	Frames  int       `json:"frames"`
	Created time.Time `json:"created"`
}

func (p *pipeline) info() PipelineInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ambient := p.proc.(*vision.Ambient)
	return PipelineInfo{
		ID:      p.id,
		Name:    p.name,
		Source:  p.source,
		Ambient: ambient,
		Halted:  p.proc.Halted(),
		Frames:  p.frames,
		Created: p.created,
	}
}

// AddPipeline builds cfg and registers it under a new ID. source is a label
// for listings, usually the configuration path.
func (s *Server) AddPipeline(cfg *config.File, source string) (PipelineInfo, error) {
	proc, err := vision.Build(cfg, s.logger)
	if err != nil {
		return PipelineInfo{}, err
	}
	p := &pipeline{
		id:      uuid.NewString(),
		name:    cfg.Name,
		source:  source,
		created: time.Now(),
		proc:    proc,
	}

	s.mu.Lock()
	s.pipelines[p.id] = p
	s.mu.Unlock()

	s.logger.Info("pipeline created",
		zap.String("pipeline_id", p.id),
		zap.String("name", p.name),
		zap.String("source", source),
	)
	return p.info(), nil
}

func (s *Server) lookupPipeline(id string) (*pipeline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pipelines[id]
	if !ok {
		return nil, fmt.Errorf("unknown pipeline: %s", id)
	}
	return p, nil
}

func (s *Server) removePipeline(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pipelines[id]; !ok {
		return fmt.Errorf("unknown pipeline: %s", id)
	}
	delete(s.pipelines, id)
	s.logger.Info("pipeline deleted", zap.String("pipeline_id", id))
	return nil
}

// Pipelines lists the registered pipelines, oldest first.
func (s *Server) Pipelines() []PipelineInfo {
	s.mu.RLock()
	list := make([]*pipeline, 0, len(s.pipelines))
	for _, p := range s.pipelines {
		list = append(list, p)
	}
	s.mu.RUnlock()

	infos := make([]PipelineInfo, 0, len(list))
	for _, p := range list {
		infos = append(infos, p.info())
	}
	sort.Slice(infos, func(i, j int) bool {
		if !infos[i].Created.Equal(infos[j].Created) {
			return infos[i].Created.Before(infos[j].Created)
		}
		return infos[i].ID < infos[j].ID
	})
	return infos
}
