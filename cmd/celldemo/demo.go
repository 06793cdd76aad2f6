package main

import (
	"fmt"

	"github.com/kungfusheep/cellui"
)

var (
	keyQuit  = cellui.MustKeybind("q")
	keyPopup = cellui.MustKeybind("p")
	keyReset = cellui.MustKeybind("ctrl+r")
	keyBump  = cellui.MustKeybind("enter")
	keySpace = cellui.MustKeybind("space")
)

type demo struct {
	stats   *cellui.FrameStats
	counts  [3]int
	focused [3]bool
	popup   bool
	last    *cellui.Term
	theme   cellui.Theme
}

func (d *demo) build(term *cellui.Term) {
	t := term.Tree()
	d.theme = term.Theme()

	if cellui.KeyPressedBind(t, keyQuit) {
		term.RequestQuit()
	}
	if cellui.KeyPressedBind(t, keyPopup) {
		d.popup = !d.popup
	}
	if cellui.KeyPressedBind(t, keyReset) {
		d.counts = [3]int{}
	}

	cellui.Column(t, func(t *cellui.Tree) {
		cellui.StyledLabel(t, " celldemo  q quit  p popup  tab focus  ctrl+r reset", d.theme.Accent)
		cellui.StyledLabel(t, fmt.Sprintf(" %v  frame %d  %s", term.Size(), term.Frame(), term.Timing()), d.theme.Muted)

		cellui.RowList().WithSpacing(1).Show(t, func(t *cellui.Tree) {
			for i := range d.counts {
				d.counter(t, i)
			}
		})

		cellui.Expanded(t, func(t *cellui.Tree) {
			cellui.Row(t, func(t *cellui.Tree) {
				cellui.Expanded(t, func(t *cellui.Tree) {
					cellui.Border(t, cellui.BorderProps{Border: cellui.BorderRounded, Style: d.theme.Border, Title: "items"}, func(t *cellui.Tree) {
						cellui.Scrollable(t, func(t *cellui.Tree) {
							for i := range 100 {
								cellui.Labelf(t, "item %03d", i)
							}
						})
					})
				})
				cellui.Border(t, cellui.BorderProps{Border: cellui.BorderSingle, Style: d.theme.Border, Title: "renderer"}, func(t *cellui.Tree) {
					cellui.StatsTable(t, d.stats)
				})
			})
		})

		if d.popup {
			d.showPopup(t)
		}
	})
}

func (d *demo) counter(t *cellui.Tree, i int) {
	border := cellui.BorderSingle
	if d.focused[i] {
		border = cellui.BorderDouble
	}

	focus := cellui.KeyArea(t, cellui.KeyAreaProps{Focusable: true}, func(t *cellui.Tree) {
		area := cellui.MouseArea(t, func(t *cellui.Tree) {
			cellui.Border(t, cellui.BorderProps{Border: border, Style: d.theme.Border, Title: fmt.Sprint(i + 1)}, func(t *cellui.Tree) {
				cellui.Labelf(t, " clicks %3d ", d.counts[i])
			})
		})
		if area.Value.Clicked {
			d.counts[i]++
		}
	})

	d.focused[i] = focus.Value.Focused
	if focus.Value.Is(keyBump) || focus.Value.Is(keySpace) {
		d.counts[i]++
	}
}

func (d *demo) showPopup(t *cellui.Tree) {
	flow := cellui.Relative(cellui.AnchorTopLeft, cellui.Dimension2{X: cellui.Ratio(0.25), Y: cellui.Ratio(0.25)})
	cellui.Float(t, cellui.FloatProps{Flow: flow}, func(t *cellui.Tree) {
		cellui.Sized(t, cellui.V(32, 5), func(t *cellui.Tree) {
			cellui.Container(t, d.theme.Overlay, func(t *cellui.Tree) {
				cellui.Border(t, cellui.BorderProps{Border: cellui.BorderDouble, Title: "popup"}, func(t *cellui.Tree) {
					// reset every time the popup opens
					frames := cellui.State(t, func() int { return 0 })
					*frames++
					area := cellui.MouseArea(t, func(t *cellui.Tree) {
						cellui.Column(t, func(t *cellui.Tree) {
							cellui.Label(t, "floats hit-test above the page")
							cellui.Labelf(t, "open for %d frames", *frames)
							cellui.StyledLabel(t, "click to close", d.theme.Muted)
						})
					})
					if area.Value.Clicked {
						d.popup = false
					}
				})
			})
		})
	})
}
