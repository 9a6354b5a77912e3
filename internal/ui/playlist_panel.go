package ui

import (
	"context"
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"syncplayer/internal/model"
	"syncplayer/internal/platform"
)

// PlaylistPanel resolves a playlist URL into a list of embeddable sources and
// lets the user pick one to mount. Resolution runs off the UI thread; widget
// updates go back through fyne.Do.
type PlaylistPanel struct {
	localization *Localization
	resolver     *platform.PlaylistResolverService

	urlEntry    *widget.Entry
	loadBtn     *widget.Button
	statusLabel *widget.Label
	spinner     *widget.ProgressBarInfinite
	videoList   *widget.List

	container *fyne.Container

	mu       sync.Mutex
	playlist *model.Playlist

	onVideoSelected func(video *model.PlaylistVideo)
}

// NewPlaylistPanel creates the playlist panel
func NewPlaylistPanel(localization *Localization) *PlaylistPanel {
	pp := &PlaylistPanel{
		localization: localization,
		resolver:     platform.NewPlaylistResolverService(),
	}

	pp.createUI()
	return pp
}

// SetVideoSelectedCallback sets the callback invoked when the user picks a
// source from the resolved playlist
func (pp *PlaylistPanel) SetVideoSelectedCallback(fn func(video *model.PlaylistVideo)) {
	pp.onVideoSelected = fn
}

// Container returns the root container of the panel
func (pp *PlaylistPanel) Container() *fyne.Container {
	return pp.container
}

// createUI creates the panel widgets
func (pp *PlaylistPanel) createUI() {
	pp.urlEntry = widget.NewEntry()
	pp.urlEntry.SetPlaceHolder(pp.localization.GetText(KeyEnterPlaylistURL))
	pp.urlEntry.OnSubmitted = func(string) {
		pp.onLoadClick()
	}

	pp.loadBtn = widget.NewButton(pp.localization.GetText(KeyLoad), pp.onLoadClick)

	pp.statusLabel = widget.NewLabel("")
	pp.statusLabel.Hide()
	pp.spinner = widget.NewProgressBarInfinite()
	pp.spinner.Hide()

	pp.videoList = widget.NewList(
		func() int {
			pp.mu.Lock()
			defer pp.mu.Unlock()
			if pp.playlist == nil {
				return 0
			}
			return len(pp.playlist.Videos)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			pp.updateVideoRow(id, obj)
		},
	)
	pp.videoList.OnSelected = pp.onVideoTapped

	topRow := container.NewBorder(nil, nil, nil, pp.loadBtn, pp.urlEntry)
	statusRow := container.NewHBox(pp.spinner, pp.statusLabel)
	pp.container = container.NewBorder(
		container.NewVBox(topRow, statusRow),
		nil, nil, nil,
		pp.videoList,
	)
}

// updateVideoRow renders one playlist entry
func (pp *PlaylistPanel) updateVideoRow(id widget.ListItemID, obj fyne.CanvasObject) {
	pp.mu.Lock()
	defer pp.mu.Unlock()

	if pp.playlist == nil || id >= len(pp.playlist.Videos) {
		return
	}

	label, ok := obj.(*widget.Label)
	if !ok {
		log.Printf("playlist panel: expected Label but got %T", obj)
		return
	}

	video := pp.playlist.Videos[id]
	text := video.Title
	if video.Duration != "" {
		text += TimeSeparator + video.Duration
	}
	label.SetText(text)
}

// onLoadClick resolves the entered playlist URL in the background
func (pp *PlaylistPanel) onLoadClick() {
	url := pp.urlEntry.Text
	if url == "" {
		return
	}

	pp.loadBtn.Disable()
	pp.statusLabel.SetText(pp.localization.GetText(KeyResolving))
	pp.statusLabel.Show()
	pp.spinner.Show()

	go func() {
		playlist, err := pp.resolver.ResolvePlaylist(context.Background(), url)

		fyne.Do(func() {
			pp.loadBtn.Enable()
			pp.spinner.Hide()

			if err != nil {
				log.Printf("playlist panel: resolve failed for %s: %v", url, err)
				pp.statusLabel.SetText(IconError + " " + pp.localization.GetText(KeyPlaylistError))
				return
			}

			pp.mu.Lock()
			pp.playlist = playlist
			pp.mu.Unlock()

			if !playlist.IsReady() {
				pp.statusLabel.SetText(pp.localization.GetText(KeyPlaylistEmpty))
			} else {
				pp.statusLabel.SetText(playlist.Title)
			}
			pp.videoList.Refresh()
		})
	}()
}

// onVideoTapped forwards the selected source to the host
func (pp *PlaylistPanel) onVideoTapped(id widget.ListItemID) {
	pp.videoList.UnselectAll()

	pp.mu.Lock()
	var video *model.PlaylistVideo
	if pp.playlist != nil && id < len(pp.playlist.Videos) {
		video = pp.playlist.Videos[id]
	}
	pp.mu.Unlock()

	if video == nil || pp.onVideoSelected == nil {
		return
	}
	pp.onVideoSelected(video)
}
