package app

import (
	"context"

	"go.trai.ch/fmtpin/internal/engine/configcache"
)

// Session formats files against one config resolved up front. Later changes
// to the config file are not observed.
type Session struct {
	orchestrator *Orchestrator
	configPath   string
	resolution   *configcache.Resolution
}

// CreateSession resolves the config at configPath and binds it to a Session.
func (o *Orchestrator) CreateSession(ctx context.Context, configPath string) (*Session, error) {
	ctx, span := o.tracer.Start(ctx, "session.create")
	defer span.End()
	span.SetAttribute("fmtpin.config", configPath)

	res, err := o.resolve(ctx, configPath)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &Session{orchestrator: o, configPath: configPath, resolution: res}, nil
}

// Version returns the engine version the session formats with.
func (s *Session) Version() string {
	return s.resolution.Config.Version
}

// MatchesProjectFilters reports whether filePath is inside the project's inclusion scope.
func (s *Session) MatchesProjectFilters(filePath string) bool {
	return s.resolution.Config.IsIncluded(filePath)
}

// Format formats code and never fails, like Orchestrator.Format.
func (s *Session) Format(ctx context.Context, filePath, code string) string {
	out, err := s.FormatDetailed(ctx, filePath, code)
	if err != nil {
		s.orchestrator.report(s.configPath, err)
		return code
	}
	return out
}

// FormatDetailed formats code and returns the *domain.FormatError on failure.
func (s *Session) FormatDetailed(ctx context.Context, filePath, code string) (string, error) {
	ctx, span := s.orchestrator.tracer.Start(ctx, "format")
	defer span.End()
	span.SetAttribute("fmtpin.config", s.configPath)
	span.SetAttribute("fmtpin.file", filePath)

	out, err := s.orchestrator.formatWith(ctx, s.resolution, filePath, code, span)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return out, nil
}
