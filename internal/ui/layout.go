package ui

import (
	"sync"

	tint "github.com/lrstanley/bubbletint"
)

const (
	// Outer border of the grid view, one char per side
	FrameOverhead = 2

	// Title line, pager line and footer
	ChromeHeight = 3
)

type LayoutManager struct {
	mu          sync.RWMutex
	totalWidth  int
	totalHeight int
	theme       tint.Tint
}

var (
	layoutInstance *LayoutManager
	layoutOnce     sync.Once
)

func GetLayout() *LayoutManager {
	layoutOnce.Do(func() {
		layoutInstance = &LayoutManager{
			theme: CurrentTheme(),
		}
	})
	return layoutInstance
}

func (l *LayoutManager) Update(width, height int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.totalWidth = width
	l.totalHeight = height
}

func (l *LayoutManager) SetTheme(t tint.Tint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.theme = t
}

func (l *LayoutManager) Theme() tint.Tint {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.theme == nil {
		return KogridTheme
	}
	return l.theme
}

func (l *LayoutManager) TotalWidth() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalWidth
}

func (l *LayoutManager) TotalHeight() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalHeight
}

// InnerWidth is the usable width inside the grid frame
func (l *LayoutManager) InnerWidth() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return max(l.totalWidth-FrameOverhead, 0)
}
