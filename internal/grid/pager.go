package grid

// CurrentPageIndex is the zero-based index of the page shown.
func (vm *ViewModel) CurrentPageIndex() int {
	return vm.currentPageIndex.Get()
}

// StartPage is the first page number (one-based) in the pager window.
func (vm *ViewModel) StartPage() int {
	return vm.startPage.Get()
}

// MaxPageIndex is ceil(len/pageSize)-1, or -1 when there is no data.
func (vm *ViewModel) MaxPageIndex() int {
	n := vm.data.Len()
	return (n+vm.pageSize-1)/vm.pageSize - 1
}

// EndPage is the last page number in the pager window.
func (vm *ViewModel) EndPage() int {
	return min(vm.startPage.Get()+vm.pagerCount-1, vm.MaxPageIndex()+1)
}

// ShowPagerRow reports whether the prev/next controls are shown.
func (vm *ViewModel) ShowPagerRow() bool {
	return vm.pagerCount-1 <= vm.MaxPageIndex()
}

// ItemsOnCurrentPage returns the rows of the current page. Non-reactive data
// sources yield an empty page.
func (vm *ViewModel) ItemsOnCurrentPage() []Row {
	if _, ok := vm.data.(Subscriber); !ok {
		return []Row{}
	}
	start := vm.pageSize * vm.currentPageIndex.Get()
	return vm.data.Slice(start, start+vm.pageSize)
}

// PagerLinks lists the page numbers in the window.
func (vm *ViewModel) PagerLinks() []PageLink {
	start, end := vm.startPage.Get(), vm.EndPage()
	current := vm.currentPageIndex.Get() + 1
	links := make([]PageLink, 0, max(end-start+1, 0))
	for n := start; n <= end; n++ {
		links = append(links, PageLink{Number: n, Selected: n == current})
	}
	return links
}

// NextPage moves one page forward. On the last page, or with no data, it does
// nothing. The window slides forward by one when the new index equals the
// window's end page as it was before moving, i.e. the cursor stepped one past
// the last link shown.
func (vm *ViewModel) NextPage() {
	idx := vm.currentPageIndex.Get()
	if idx >= vm.MaxPageIndex() {
		return
	}
	vm.mutate(func() {
		end := vm.EndPage()
		next := idx + 1
		vm.currentPageIndex.Set(next)
		if next == end {
			vm.startPage.Set(vm.startPage.Get() + 1)
		}
		vm.logger.Debug("Grid: next page", "index", next, "start_page", vm.startPage.Get())
	})
}

// PrevPage moves one page back. On the first page it does nothing. The window
// slides back by one when the cursor moves in front of it.
func (vm *ViewModel) PrevPage() {
	idx := vm.currentPageIndex.Get()
	if idx == 0 {
		return
	}
	vm.mutate(func() {
		prev := idx - 1
		vm.currentPageIndex.Set(prev)
		if start := vm.startPage.Get(); prev+1 < start && start > 1 {
			vm.startPage.Set(start - 1)
		}
		vm.logger.Debug("Grid: prev page", "index", prev, "start_page", vm.startPage.Get())
	})
}

// GoToPage jumps to pager link n (one-based). Only numbers inside the current
// window are accepted; the window itself does not move. It reports whether
// the jump happened.
func (vm *ViewModel) GoToPage(n int) bool {
	if n < vm.startPage.Get() || n > vm.EndPage() {
		return false
	}
	vm.mutate(func() {
		vm.currentPageIndex.Set(n - 1)
		vm.logger.Debug("Grid: jump to page", "page", n)
	})
	return true
}
