package chat

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// 接受的两次请求之间的最小间隔
const minRequestInterval = 3 * time.Second

var (
	ErrSessionBusy    = errors.New("a generation is already in progress for this session")
	ErrTooManyRequest = errors.New("requests arriving faster than the minimum interval")
)

// SessionState 会话级状态：忙标志、限流器、上次请求时间。
// 提醒队列持久化在数据库中（见 dao.DrainReminders）
type SessionState struct {
	mu          sync.Mutex
	generating  bool
	lastRequest time.Time
	limiter     *rate.Limiter
}

func newSessionState(interval time.Duration) *SessionState {
	return &SessionState{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// BeginTurn 申请开始一轮对话。会话忙或距上次接受的请求
// 不足最小间隔时立即拒绝，不排队不重试
func (s *SessionState) BeginTurn() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generating {
		return ErrSessionBusy
	}
	if !s.limiter.Allow() {
		return ErrTooManyRequest
	}

	s.generating = true
	s.lastRequest = time.Now()
	return nil
}

// EndTurn 结束本轮对话，正常与出错路径都必须调用
func (s *SessionState) EndTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false
}

// SessionRegistry 按会话ID索引会话状态，一个会话一个实例
type SessionRegistry struct {
	mu       sync.Mutex
	interval time.Duration
	sessions map[string]*SessionState
}

func NewSessionRegistry(interval time.Duration) *SessionRegistry {
	return &SessionRegistry{
		interval: interval,
		sessions: make(map[string]*SessionState),
	}
}

func (r *SessionRegistry) Get(sessionID string) *SessionState {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.sessions[sessionID]
	if !ok {
		state = newSessionState(r.interval)
		r.sessions[sessionID] = state
	}
	return state
}

// Sessions 全局会话状态表
var Sessions = NewSessionRegistry(minRequestInterval)
