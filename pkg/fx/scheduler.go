package fx

import (
	"time"

	"go.uber.org/zap"

	"github.com/decker502/glassfx/internal/logging"
)

// Ticker is advanced once per frame by a Scheduler.
type Ticker interface {
	Tick(now time.Time)
}

// Scheduler 帧调度器
//
// 宿主在每次显示刷新时调用 Frame（Ebitengine 中即 Game.Update），
// 调度器读取一次时钟并按注册顺序推进所有 Ticker。Stop 之后 Frame 为空操作，
// 用于确定性地停止动画。
type Scheduler struct {
	clock   Clock
	log     *zap.SugaredLogger
	tickers []Ticker
	ticking []Ticker // Frame 期间的快照，允许 Ticker 在 Tick 中移除自己
	running bool
	frames  int
}

// NewScheduler 创建未启动的调度器；clock 为 nil 时使用系统时钟
func NewScheduler(clock Clock, log *zap.SugaredLogger) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{clock: clock, log: logging.OrNop(log).Named("scheduler")}
}

// Add 注册 Ticker，重复注册被忽略
func (s *Scheduler) Add(t Ticker) {
	for _, x := range s.tickers {
		if x == t {
			return
		}
	}
	s.tickers = append(s.tickers, t)
}

// Remove 注销 Ticker，保持其余顺序
func (s *Scheduler) Remove(t Ticker) {
	for i, x := range s.tickers {
		if x == t {
			s.tickers = append(s.tickers[:i], s.tickers[i+1:]...)
			return
		}
	}
}

// Len 返回已注册的 Ticker 数量
func (s *Scheduler) Len() int {
	return len(s.tickers)
}

// Start 开始调度
func (s *Scheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	s.log.Infof("[Scheduler] started with %d instances", len(s.tickers))
}

// Stop 停止调度；之后的 Frame 不再推进任何 Ticker
func (s *Scheduler) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.log.Infof("[Scheduler] stopped after %d frames", s.frames)
}

// Running 返回是否正在调度
func (s *Scheduler) Running() bool {
	return s.running
}

// Frames 返回已执行的帧数
func (s *Scheduler) Frames() int {
	return s.frames
}

// Frame 推进一帧，返回被推进的 Ticker 数量
func (s *Scheduler) Frame() int {
	if !s.running {
		return 0
	}
	now := s.clock.Now()
	s.ticking = append(s.ticking[:0], s.tickers...)
	for _, t := range s.ticking {
		t.Tick(now)
	}
	s.frames++
	n := len(s.ticking)
	clear(s.ticking)
	return n
}
