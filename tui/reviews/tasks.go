package reviews

import (
	"context"
	"image"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/CrestNiraj12/reviewlist/app"
	"github.com/CrestNiraj12/reviewlist/app/paging"
)

// ImageKind tells avatars from review photos.
type ImageKind int

const (
	ImageAvatar ImageKind = iota
	ImagePhoto
)

// ImageLoadedMsg carries the outcome of one image fetch back to its slot.
type ImageLoadedMsg struct {
	Slot  int
	Gen   uint64
	Row   uuid.UUID
	Kind  ImageKind
	Index int
	Image image.Image
	Err   error
}

type thumbKey struct {
	row   uuid.UUID
	kind  ImageKind
	index int
}

type slotTask struct {
	row    uuid.UUID
	gen    uint64
	cancel context.CancelFunc
}

// imageTasks owns the in-flight image fetches of each visible slot. A slot
// holds at most one task set; giving the slot to another row cancels the old
// set, and results tagged with an old generation are rejected.
type imageTasks struct {
	parent context.Context
	src    app.ImageSource
	slots  map[int]*slotTask
	gen    uint64
}

func newImageTasks(parent context.Context, src app.ImageSource) *imageTasks {
	return &imageTasks{
		parent: parent,
		src:    src,
		slots:  make(map[int]*slotTask),
	}
}

// assign binds slot to item and returns fetch commands for every image need
// reports as missing. Re-assigning the same row is a no-op.
func (t *imageTasks) assign(slot int, item paging.RowItem, need func(thumbKey) bool) []tea.Cmd {
	if cur, ok := t.slots[slot]; ok {
		if cur.row == item.ID {
			return nil
		}
		cur.cancel()
	}

	t.gen++
	ctx, cancel := context.WithCancel(t.parent)
	task := &slotTask{row: item.ID, gen: t.gen, cancel: cancel}
	t.slots[slot] = task

	if t.src == nil {
		return nil
	}

	var cmds []tea.Cmd
	if item.AvatarURL != "" && need(thumbKey{row: item.ID, kind: ImageAvatar}) {
		cmds = append(cmds, t.fetch(ctx, slot, task, ImageAvatar, 0, item.AvatarURL))
	}
	for i, url := range item.PhotoURLs {
		if url != "" && need(thumbKey{row: item.ID, kind: ImagePhoto, index: i}) {
			cmds = append(cmds, t.fetch(ctx, slot, task, ImagePhoto, i, url))
		}
	}
	return cmds
}

func (t *imageTasks) fetch(ctx context.Context, slot int, task *slotTask, kind ImageKind, index int, url string) tea.Cmd {
	src, gen, row := t.src, task.gen, task.row
	return func() tea.Msg {
		img, err := src.FetchImage(ctx, url)
		return ImageLoadedMsg{Slot: slot, Gen: gen, Row: row, Kind: kind, Index: index, Image: img, Err: err}
	}
}

// release cancels every slot numbered from and above.
func (t *imageTasks) release(from int) {
	for slot, task := range t.slots {
		if slot >= from {
			task.cancel()
			delete(t.slots, slot)
		}
	}
}

// accept reports whether msg still belongs to the row its slot shows.
func (t *imageTasks) accept(msg ImageLoadedMsg) bool {
	task, ok := t.slots[msg.Slot]
	return ok && task.gen == msg.Gen && task.row == msg.Row
}

func (t *imageTasks) active() int { return len(t.slots) }

func (t *imageTasks) closeAll() { t.release(0) }
