// Package session хранит сессии чатов: токен, профиль пользователя и
// запомненный email. Это единственное локальное состояние приложения,
// всё остальное живёт на бекенде.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/ivanoskov/subscription_bot/internal/model"
)

// Session сессия одного чата
type Session struct {
	Token           string     `json:"token,omitempty"`
	User            model.User `json:"user,omitempty"`
	RememberedEmail string     `json:"remembered_email,omitempty"`
}

// Authorized true, если в сессии есть токен
func (s Session) Authorized() bool {
	return s.Token != ""
}

// Manager потокобезопасное хранилище сессий с сохранением в JSON-файл
type Manager struct {
	path string

	mu       sync.RWMutex
	sessions map[int64]Session
}

// NewManager создаёт менеджер и подгружает сессии из файла, если он есть
func NewManager(path string) (*Manager, error) {
	m := &Manager{
		path:     path,
		sessions: make(map[int64]Session),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions file: %w", err)
	}
	if err := json.Unmarshal(data, &m.sessions); err != nil {
		return nil, fmt.Errorf("failed to parse sessions file: %w", err)
	}
	return m, nil
}

// Get возвращает копию сессии чата
func (m *Manager) Get(chatID int64) Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[chatID]
}

// Login сохраняет токен и профиль после успешного входа
func (m *Manager) Login(chatID int64, token string, user model.User, rememberEmail bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.sessions[chatID]
	session.Token = token
	session.User = user
	if rememberEmail {
		session.RememberedEmail = user.Email
	}
	m.sessions[chatID] = session
	return m.persist()
}

// UpdateUser обновляет сохранённый профиль, не трогая токен
func (m *Manager) UpdateUser(chatID int64, user model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.sessions[chatID]
	session.User = user
	m.sessions[chatID] = session
	return m.persist()
}

// Logout сбрасывает токен и профиль, запомненный email остаётся
func (m *Manager) Logout(chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.sessions[chatID]
	session.Token = ""
	session.User = model.User{}
	m.sessions[chatID] = session
	return m.persist()
}

// persist пишет файл атомарно, вызывается под мьютексом
func (m *Manager) persist() error {
	data, err := json.MarshalIndent(m.sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %w", err)
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write sessions file: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return fmt.Errorf("failed to replace sessions file: %w", err)
	}
	return nil
}
