package application

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openkraft/typeguard/internal/domain"
	"github.com/openkraft/typeguard/internal/domain/typecheck"
	"github.com/openkraft/typeguard/internal/logger"
)

// Call is one recorded tool invocation. Response is nil when the call has
// no recorded response. The schema fields override the schema store.
type Call struct {
	Tool         string
	Arguments    *domain.Object
	Response     domain.Value
	InputSchema  *domain.Schema
	OutputSchema *domain.Schema
}

// CallResult is the outcome of tracking one call.
type CallResult struct {
	Tool      string                   `json:"tool"`
	Skipped   bool                     `json:"skipped"`
	Arguments domain.ValidationReport  `json:"arguments"`
	Response  *domain.ValidationReport `json:"response,omitempty"`
}

// SessionService validates calls and folds their reports into session
// stats. It is safe for concurrent use.
type SessionService struct {
	cfg     domain.Config
	schemas domain.SchemaStore
	log     *zap.SugaredLogger

	mu    sync.Mutex
	stats *domain.SessionStats
}

// NewSessionService starts a new session with a random ID.
func NewSessionService(cfg domain.Config, schemas domain.SchemaStore) *SessionService {
	id := uuid.NewString()
	return &SessionService{
		cfg:     cfg,
		schemas: schemas,
		log:     logger.Named("session").With(logger.FieldSession, id),
		stats:   domain.NewSessionStats(id, time.Now().UTC()),
	}
}

// Schemas resolves the schemas of tool from the schema store.
func (s *SessionService) Schemas(tool string) (domain.ToolSchemas, error) {
	if s.schemas == nil {
		return domain.ToolSchemas{}, nil
	}
	schemas, err := s.schemas.Lookup(tool)
	if err != nil {
		return domain.ToolSchemas{}, errors.Wrapf(err, "resolving schema for %s", tool)
	}
	return schemas, nil
}

// Track validates a call and records it in the session. Tools listed in
// skip_tools are counted but not validated.
func (s *SessionService) Track(call Call) (CallResult, error) {
	result := CallResult{Tool: call.Tool, Arguments: domain.NewReport()}

	if s.cfg.IsSkipped(call.Tool) {
		result.Skipped = true
		s.fold(result)
		s.log.Debugw("call skipped", logger.FieldTool, call.Tool)
		return result, nil
	}

	input, output := call.InputSchema, call.OutputSchema
	if input == nil || output == nil {
		stored, err := s.Schemas(call.Tool)
		if err != nil {
			return CallResult{}, err
		}
		if input == nil {
			input = stored.Input
		}
		if output == nil {
			output = stored.Output
		}
	}

	args := call.Arguments
	if args == nil {
		args = domain.NewObject()
	}
	result.Arguments = typecheck.ValidateToolArguments(call.Tool, args, input)

	if call.Response != nil && s.cfg.CheckResponses {
		resp := typecheck.CheckResponseTypes(call.Response, output)
		result.Response = &resp
	}

	s.fold(result)
	s.log.Debugw("call tracked",
		logger.FieldTool, call.Tool,
		logger.FieldValid, result.Arguments.Valid,
		logger.FieldWarnings, len(result.Arguments.Warnings),
		logger.FieldErrors, len(result.Arguments.Errors),
		logger.FieldFixes, result.Arguments.AutoFixes.Len())
	return result, nil
}

// ValidateArguments tracks a call without a response and returns its
// argument report.
func (s *SessionService) ValidateArguments(tool string, args *domain.Object, schema *domain.Schema) (domain.ValidationReport, error) {
	res, err := s.Track(Call{Tool: tool, Arguments: args, InputSchema: schema})
	if err != nil {
		return domain.ValidationReport{}, err
	}
	return res.Arguments, nil
}

// CheckResponse checks a response against the tool's output schema. It does
// not count as a call.
func (s *SessionService) CheckResponse(tool string, response domain.Value, schema *domain.Schema) (domain.ValidationReport, error) {
	if schema == nil {
		stored, err := s.Schemas(tool)
		if err != nil {
			return domain.ValidationReport{}, err
		}
		schema = stored.Output
	}
	return typecheck.CheckResponseTypes(response, schema), nil
}

func (s *SessionService) fold(res CallResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.TotalCalls++
	if res.Skipped {
		return
	}
	s.stats.ValidatedCalls++

	reports := []domain.ValidationReport{res.Arguments}
	if res.Response != nil {
		reports = append(reports, *res.Response)
	}
	for _, r := range reports {
		s.stats.WarningsIssued += len(r.Warnings)
		s.stats.ErrorsPrevented += len(r.Errors)
		s.stats.AutoFixesApplied += r.AutoFixes.Len()
		for _, p := range r.Patterns() {
			s.stats.PatternsDetected[p]++
		}
	}
}

// Snapshot returns a copy of the current stats.
func (s *SessionService) Snapshot() *domain.SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.Clone()
}

// Reset starts a fresh session, keeping the session ID.
func (s *SessionService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = domain.NewSessionStats(s.stats.SessionID, time.Now().UTC())
}
