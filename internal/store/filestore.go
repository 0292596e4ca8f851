package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rickkk856/carbon-agent-api/internal/domain"
)

// idPattern restricts identifiers to characters that are safe as directory
// names. Slashes are excluded so an identifier can never escape the tree.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

func validID(id string) bool {
	return id != "." && id != ".." && idPattern.MatchString(id)
}

// Ensure FileStore implements Repository.
var _ Repository = (*FileStore)(nil)

// FileStore persists sessions under a base directory, one JSON file per
// entity:
//
//	<root>/<user_id>/session_<session_id>/session.json
//	<root>/<user_id>/session_<session_id>/agents/agent_<agent_id>/agent.json
//	<root>/<user_id>/session_<session_id>/agents/agent_<agent_id>/messages/message_<message_id>.json
//
// There is no locking around the files. Appends within one conversation
// turn are sequential, but concurrent requests to the same agent may
// interleave message ordering, and concurrent SaveAgent calls are
// last-writer-wins.
type FileStore struct {
	root string
	now  func() time.Time
}

// NewFileStore creates a file store rooted at dir, creating the directory
// if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, storageErr("create root", dir, err)
	}
	return &FileStore{root: dir, now: time.Now}, nil
}

func (s *FileStore) sessionDir(userID, sessionID string) string {
	return filepath.Join(s.root, userID, "session_"+sessionID)
}

func (s *FileStore) agentDir(session *domain.Session, agentID string) string {
	return filepath.Join(s.sessionDir(session.UserID, session.SessionID), "agents", "agent_"+agentID)
}

func (s *FileStore) messagesDir(session *domain.Session, agentID string) string {
	return filepath.Join(s.agentDir(session, agentID), "messages")
}

// LoadOrCreateSession returns the persisted session, creating the on-disk
// hierarchy and an empty session record on first use.
func (s *FileStore) LoadOrCreateSession(ctx context.Context, userID, sessionID string) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validID(userID) || !validID(sessionID) {
		return nil, fmt.Errorf("%w: user %q session %q", ErrInvalidID, userID, sessionID)
	}

	path := filepath.Join(s.sessionDir(userID, sessionID), "session.json")
	session := &domain.Session{}
	err := readJSON(path, session)
	switch {
	case err == nil:
		return session, nil
	case errors.Is(err, fs.ErrNotExist):
		// First request for this pair: create the directory and record.
		now := s.now().UTC()
		session = &domain.Session{
			UserID:    userID,
			SessionID: sessionID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := os.MkdirAll(s.sessionDir(userID, sessionID), 0o755); err != nil {
			return nil, storageErr("create session dir", path, err)
		}
		if err := writeJSON(path, session); err != nil {
			return nil, err
		}
		return session, nil
	default:
		return nil, err
	}
}

// TouchSession bumps the last-activity timestamp and persists the record.
func (s *FileStore) TouchSession(ctx context.Context, session *domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	session.UpdatedAt = s.now().UTC()
	path := filepath.Join(s.sessionDir(session.UserID, session.SessionID), "session.json")
	return writeJSON(path, session)
}

// DeleteSession removes the session directory and everything beneath it.
func (s *FileStore) DeleteSession(ctx context.Context, userID, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validID(userID) || !validID(sessionID) {
		return fmt.Errorf("%w: user %q session %q", ErrInvalidID, userID, sessionID)
	}
	dir := s.sessionDir(userID, sessionID)
	if err := os.RemoveAll(dir); err != nil {
		return storageErr("delete session", dir, err)
	}
	return nil
}

// LoadOrCreateAgent returns the agent's persisted state, initializing it
// from defaultCfg when absent.
func (s *FileStore) LoadOrCreateAgent(ctx context.Context, session *domain.Session, agentID string, defaultCfg domain.AgentConfig) (*domain.AgentState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validID(agentID) {
		return nil, fmt.Errorf("%w: agent %q", ErrInvalidID, agentID)
	}

	path := filepath.Join(s.agentDir(session, agentID), "agent.json")
	agent := &domain.AgentState{}
	err := readJSON(path, agent)
	switch {
	case err == nil:
		return agent, nil
	case errors.Is(err, fs.ErrNotExist):
		manager := domain.ManagerNull
		if defaultCfg.WindowSize > 0 {
			manager = domain.ManagerSlidingWindow
		}
		agent = &domain.AgentState{
			AgentID:             agentID,
			Config:              defaultCfg,
			ConversationManager: manager,
		}
		if err := s.SaveAgent(ctx, session, agent); err != nil {
			return nil, err
		}
		return agent, nil
	default:
		return nil, err
	}
}

// SaveAgent persists the full state snapshot. Overwrite semantics:
// concurrent saves for the same agent are last-writer-wins.
func (s *FileStore) SaveAgent(ctx context.Context, session *domain.Session, agent *domain.AgentState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validID(agent.AgentID) {
		return fmt.Errorf("%w: agent %q", ErrInvalidID, agent.AgentID)
	}
	dir := s.agentDir(session, agent.AgentID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return storageErr("create agent dir", dir, err)
	}
	return writeJSON(filepath.Join(dir, "agent.json"), agent)
}

// AppendMessage allocates the next message ID and writes the message as an
// individual record. Records are never overwritten: the file is created
// exclusively, and the ID is re-derived if another writer got there first.
func (s *FileStore) AppendMessage(ctx context.Context, session *domain.Session, agentID string, role domain.Role, content string) (*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validID(agentID) {
		return nil, fmt.Errorf("%w: agent %q", ErrInvalidID, agentID)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role %q", ErrInvalidID, role)
	}

	dir := s.messagesDir(session, agentID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, storageErr("create messages dir", dir, err)
	}

	for {
		id, err := s.nextMessageID(dir)
		if err != nil {
			return nil, err
		}
		msg := &domain.Message{
			ID:        id,
			Role:      role,
			Content:   content,
			CreatedAt: s.now().UTC(),
		}
		path := filepath.Join(dir, messageFileName(id))
		err = writeJSONExclusive(path, msg)
		if errors.Is(err, fs.ErrExist) {
			// Lost the ID to a concurrent append; take the next one.
			continue
		}
		if err != nil {
			return nil, err
		}
		return msg, nil
	}
}

// ListMessages returns messages in ascending ID order. limit > 0 keeps only
// the most recent limit entries.
func (s *FileStore) ListMessages(ctx context.Context, session *domain.Session, agentID string, limit int) ([]*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validID(agentID) {
		return nil, fmt.Errorf("%w: agent %q", ErrInvalidID, agentID)
	}

	dir := s.messagesDir(session, agentID)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("list messages", dir, err)
	}

	messages := make([]*domain.Message, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := parseMessageID(entry.Name()); !ok {
			continue
		}
		msg := &domain.Message{}
		if err := readJSON(filepath.Join(dir, entry.Name()), msg); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	sort.Slice(messages, func(i, j int) bool { return messages[i].ID < messages[j].ID })

	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return messages, nil
}

// nextMessageID returns one past the highest ID present in dir, starting at 1.
func (s *FileStore) nextMessageID(dir string) (uint64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, storageErr("scan messages", dir, err)
	}
	var max uint64
	for _, entry := range entries {
		if id, ok := parseMessageID(entry.Name()); ok && id > max {
			max = id
		}
	}
	return max + 1, nil
}

func messageFileName(id uint64) string {
	return fmt.Sprintf("message_%d.json", id)
}

func parseMessageID(name string) (uint64, bool) {
	if !strings.HasPrefix(name, "message_") || !strings.HasSuffix(name, ".json") {
		return 0, false
	}
	id, err := strconv.ParseUint(strings.TrimSuffix(strings.TrimPrefix(name, "message_"), ".json"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err != nil {
		return storageErr("read", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return storageErr("decode", path, err)
	}
	return nil
}

// writeJSON replaces path with the encoded value via a temp file and
// rename, so readers never observe a half-written snapshot.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return storageErr("encode", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return storageErr("write", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return storageErr("rename", path, err)
	}
	return nil
}

// writeJSONExclusive creates path with the encoded value, failing with
// fs.ErrExist when the file is already present.
func writeJSONExclusive(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return storageErr("encode", path, err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return err
		}
		return storageErr("create", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return storageErr("write", path, err)
	}
	if err := f.Close(); err != nil {
		return storageErr("close", path, err)
	}
	return nil
}
