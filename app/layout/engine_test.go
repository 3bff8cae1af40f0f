package layout

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

// charMetrics wraps text at a fixed character width, one line per lineH.
type charMetrics struct {
	charW float64
	lineH float64
}

func (m charMetrics) Measure(t Text, maxWidth, maxHeight float64) Size {
	n := float64(len([]rune(t.Content)))
	if n == 0 {
		return Size{}
	}
	perLine := math.Floor(maxWidth / m.charW)
	if maxWidth <= 0 {
		perLine = n
	}
	perLine = max(perLine, 1)
	lines := math.Ceil(n / perLine)
	h := lines * m.lineH
	if maxHeight > 0 && h > maxHeight {
		h = math.Floor(maxHeight/m.lineH) * m.lineH
	}
	return Size{W: min(n, perLine) * m.charW, H: h}
}

func (m charMetrics) LineHeight(Text) float64 { return m.lineH }

func (m charMetrics) IsEmpty(t Text) bool { return strings.TrimSpace(t.Content) == "" }

// fixedMetrics reports a scripted natural height for body text.
type fixedMetrics struct {
	natural float64
	lineH   float64
}

func (m fixedMetrics) Measure(t Text, maxWidth, maxHeight float64) Size {
	h := m.lineH
	if t.Style == StyleBody {
		h = m.natural
	}
	if maxHeight > 0 && h > maxHeight {
		h = maxHeight
	}
	return Size{W: min(100, max(maxWidth, 0)), H: h}
}

func (m fixedMetrics) LineHeight(Text) float64 { return m.lineH }

func (m fixedMetrics) IsEmpty(t Text) bool { return t.Content == "" }

func content(body string, maxLines, photos int) RowContent {
	return RowContent{
		Name:       Text{Content: "Ivan Petrov", Style: StyleUsername},
		PhotoCount: photos,
		Body:       Text{Content: body, Style: StyleBody},
		MaxLines:   maxLines,
		Created:    Text{Content: "13 March 2024", Style: StyleCreated},
	}
}

func TestCompute_ShowMoreVisibility(t *testing.T) {
	e := NewEngine(fixedMetrics{natural: 90, lineH: 20}, DefaultGeometry())

	got := e.Compute(content("long body", 3, 0), 375)
	if !got.ShowMoreVisible {
		t.Fatalf("expected show-more when natural 90 exceeds capped 60")
	}
	if got.Body.H != 60 {
		t.Fatalf("body must be capped at 3 lines: got %v", got.Body.H)
	}
	if got.ShowMore.IsZero() {
		t.Fatalf("show-more rect must be placed when visible")
	}

	expanded := e.Compute(content("long body", 0, 0), 375)
	if expanded.ShowMoreVisible || !expanded.ShowMore.IsZero() {
		t.Fatalf("maxLines=0 must suppress show-more: %+v", expanded.ShowMore)
	}
	if expanded.Body.H != 90 {
		t.Fatalf("unlimited body must use natural height: got %v", expanded.Body.H)
	}
	if expanded.Height >= got.Height+30 || expanded.Height <= got.Height {
		t.Fatalf("expanded row should grow by body delta minus show-more: %v -> %v", got.Height, expanded.Height)
	}
}

func TestCompute_ShowMoreHiddenWhenTextFits(t *testing.T) {
	e := NewEngine(fixedMetrics{natural: 60, lineH: 20}, DefaultGeometry())
	got := e.Compute(content("fits", 3, 0), 375)
	if got.ShowMoreVisible {
		t.Fatalf("natural height equal to capped height must not show more")
	}
}

func TestCompute_ReferenceGeometryNoPhotos(t *testing.T) {
	e := NewEngine(fixedMetrics{natural: 40, lineH: 20}, DefaultGeometry())
	got := e.Compute(content("two lines", 3, 0), 375)

	if got.Avatar != (Rect{X: 12, Y: 9, W: 36, H: 36}) {
		t.Fatalf("unexpected avatar rect: %+v", got.Avatar)
	}
	if got.Name.X != 58 || got.Name.Y != 9 {
		t.Fatalf("name must start right of avatar plus gap: %+v", got.Name)
	}
	// name 20 high, +6 gap
	if got.Rating != (Rect{X: 58, Y: 35, W: 86, H: 16}) {
		t.Fatalf("unexpected rating rect: %+v", got.Rating)
	}
	if len(got.Photos) != 0 {
		t.Fatalf("no photo slots expected")
	}
	// rating bottom 51 + text gap 6
	if got.Body.Y != 57 || got.Body.H != 40 {
		t.Fatalf("unexpected body rect: %+v", got.Body)
	}
	if got.Created.Y != 103 {
		t.Fatalf("created must follow body plus gap: %+v", got.Created)
	}
	if got.Height != 132 {
		t.Fatalf("unexpected height: %v", got.Height)
	}
}

func TestCompute_PhotosLaidOutLeftToRight(t *testing.T) {
	e := NewEngine(fixedMetrics{natural: 20, lineH: 20}, DefaultGeometry())
	got := e.Compute(content("short", 3, 3), 375)

	if len(got.Photos) != 3 {
		t.Fatalf("expected 3 photo slots, got %d", len(got.Photos))
	}
	// rating bottom 51 + photo gap 10
	for i, r := range got.Photos {
		wantX := 58 + float64(i)*(55+8)
		if r != (Rect{X: wantX, Y: 61, W: 55, H: 66}) {
			t.Fatalf("photo %d misplaced: %+v", i, r)
		}
	}
	// photo bottom 127 + photos-to-text 10
	if got.Body.Y != 137 {
		t.Fatalf("body must follow photos plus gap: %+v", got.Body)
	}
}

func TestCompute_EmptyBodySkipsTextAndShowMore(t *testing.T) {
	e := NewEngine(fixedMetrics{natural: 200, lineH: 20}, DefaultGeometry())
	got := e.Compute(content("", 3, 0), 375)
	if !got.Body.IsZero() || got.ShowMoreVisible {
		t.Fatalf("empty body must leave body and show-more absent: %+v", got)
	}
	if got.Created.Y != got.Rating.MaxY()+6 {
		t.Fatalf("created must follow rating gap when body is empty: %+v", got.Created)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	e := NewEngine(charMetrics{charW: 7, lineH: 18}, DefaultGeometry())
	c := content(strings.Repeat("word ", 40), 3, 2)
	a := e.Compute(c, 320)
	b := e.Compute(c, 320)
	if fmt.Sprintf("%+v", a) != fmt.Sprintf("%+v", b) {
		t.Fatalf("layout must be a pure function of its inputs")
	}
}

func TestCompute_NonNegativeAndOrdered(t *testing.T) {
	e := NewEngine(charMetrics{charW: 7, lineH: 18}, DefaultGeometry())
	bodies := []string{"", "ok", strings.Repeat("lorem ipsum ", 5), strings.Repeat("x", 2000)}
	widths := []float64{1, 30, 58, 120, 375, 1024}
	for _, w := range widths {
		for _, body := range bodies {
			for _, maxLines := range []int{0, 1, 3} {
				for _, photos := range []int{0, 1, 5} {
					l := e.Compute(content(body, maxLines, photos), w)
					name := fmt.Sprintf("w=%v len=%d lines=%d photos=%d", w, len(body), maxLines, photos)
					assertNonNegative(t, name, l)
					assertOrdered(t, name, l)
				}
			}
		}
	}
}

func assertNonNegative(t *testing.T, name string, l RowLayout) {
	t.Helper()
	rects := append([]Rect{l.Avatar, l.Name, l.Rating, l.Body, l.ShowMore, l.Created}, l.Photos...)
	for _, r := range rects {
		if r.X < 0 || r.Y < 0 || r.W < 0 || r.H < 0 {
			t.Fatalf("%s: negative rect %+v", name, r)
		}
	}
	if l.Height < 0 {
		t.Fatalf("%s: negative height", name)
	}
}

func assertOrdered(t *testing.T, name string, l RowLayout) {
	t.Helper()
	bottom := l.Name.MaxY()
	if l.Rating.Y < bottom {
		t.Fatalf("%s: rating overlaps name", name)
	}
	bottom = l.Rating.MaxY()
	for _, p := range l.Photos {
		if p.Y < bottom {
			t.Fatalf("%s: photo overlaps rating", name)
		}
	}
	if len(l.Photos) > 0 {
		bottom = l.Photos[0].MaxY()
	}
	if !l.Body.IsZero() {
		if l.Body.Y < bottom {
			t.Fatalf("%s: body overlaps previous element", name)
		}
		bottom = l.Body.MaxY()
	}
	if l.ShowMoreVisible {
		if l.ShowMore.Y < bottom {
			t.Fatalf("%s: show-more overlaps body", name)
		}
		bottom = l.ShowMore.MaxY()
	}
	if l.Created.Y < bottom {
		t.Fatalf("%s: created overlaps previous element", name)
	}
	if l.Height < l.Created.MaxY() {
		t.Fatalf("%s: height shorter than content", name)
	}
}

func TestSummaryHeight(t *testing.T) {
	if got := SummaryHeight(DefaultGeometry()); got != 44 {
		t.Fatalf("unexpected summary height: %v", got)
	}
	if got := SummaryHeight(TerminalGeometry()); got != 3 {
		t.Fatalf("unexpected terminal summary height: %v", got)
	}
}
