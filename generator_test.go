package reportpdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockSource is a ChartSource driven by testify expectations.
type mockSource struct {
	mock.Mock
}

func (m *mockSource) CaptureChart(ctx context.Context, name ChartName) (*ChartImage, error) {
	args := m.Called(ctx, name)
	img, _ := args.Get(0).(*ChartImage)
	return img, args.Error(1)
}

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	return logger.WithContext(context.Background())
}

func generate(t *testing.T, s *Snapshot, charts ChartSource, opts ...Option) (*Result, [][]string) {
	t.Helper()
	opts = append([]Option{WithClock(fixedClock)}, opts...)
	res, err := NewGenerator(opts...).Generate(testContext(t), s, charts)
	require.NoError(t, err)
	return res, pdfLines(t, res.Bytes())
}

// indexOf returns the position of the first line equal to want, or -1.
func indexOf(text, want string) int {
	for i, line := range strings.Split(text, "\n") {
		if line == want {
			return i
		}
	}
	return -1
}

func TestGenerate_Comprehensive(t *testing.T) {
	res, pages := generate(t, sampleSnapshot(), allCharts(t))

	require.Equal(t, len(pages), res.PageCount())
	require.GreaterOrEqual(t, res.PageCount(), 2)
	assert.Equal(t, "VINScan-Report-2024-03-01.pdf", res.Filename())

	assert.Equal(t, []string{
		"VINScan Pro",
		"Fleet Performance Report",
		"Period: Jan 2024 - Feb 2024",
		"Generated: 3/1/2024, 2:30:00 PM",
		"Key Performance Metrics",
	}, pages[0][:5])

	text := allText(pages)
	for _, want := range []string{"$2.5M", "245 vehicles", "$24k", "+7.2%", "12 days"} {
		assert.Contains(t, text, want)
	}

	order := []string{
		"Key Performance Metrics",
		"Sales & Revenue Trend",
		"Inventory Distribution by Make",
		"Price Range Distribution",
		"Inventory Levels Over Time",
		"Monthly Sales Data",
	}
	last := -1
	for _, heading := range order {
		i := indexOf(text, heading)
		require.GreaterOrEqual(t, i, 0, "missing %q", heading)
		assert.Greater(t, i, last, "%q out of order", heading)
		last = i
	}
	// The make caption is shared by a chart and a table; the table comes last.
	assert.Equal(t, 2, strings.Count(text, "Inventory Distribution by Make\n"))
	assert.Greater(t, indexOf(text, "Top Performing Models"), last)
	assert.NotContains(t, text, "Location Analytics")
}

func TestGenerate_FooterOnEveryPage(t *testing.T) {
	_, pages := generate(t, sampleSnapshot(), allCharts(t), WithAttribution("Generated by Test"))

	n := len(pages)
	for i, lines := range pages {
		require.GreaterOrEqual(t, len(lines), 2)
		assert.Equal(t, "Generated by Test", lines[len(lines)-2], "page %d", i+1)
		assert.Equal(t, fmt.Sprintf("Page %d of %d", i+1, n), lines[len(lines)-1])
	}
}

func TestGenerate_EmptyInputs(t *testing.T) {
	res, pages := generate(t, &Snapshot{}, nil)

	assert.Equal(t, 1, res.PageCount())
	assert.Contains(t, pages[0], "Page 1 of 1")
	assert.Contains(t, pages[0], "Monthly Sales Data")
	assert.NotContains(t, allText(pages), "Sales & Revenue Trend")
}

func TestGenerate_MissingChartIsSkipped(t *testing.T) {
	charts := allCharts(t)
	charts.Put(PriceChart, nil)

	_, pages := generate(t, sampleSnapshot(), charts)
	text := allText(pages)
	assert.NotContains(t, text, "Price Range Distribution")
	assert.Contains(t, text, "Sales & Revenue Trend")
	assert.Contains(t, text, "Inventory Levels Over Time")
}

func TestGenerate_FailedChartLeavesNotice(t *testing.T) {
	charts := allCharts(t)
	charts.PutError(MakeChart, errors.New("zero-size element"))

	_, pages := generate(t, sampleSnapshot(), charts)
	text := allText(pages)

	i := indexOf(text, "Inventory Distribution by Make")
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, chartFailNotice, strings.Split(text, "\n")[i+1])
	assert.Equal(t, 1, strings.Count(text, chartFailNotice))
	assert.Contains(t, text, "Inventory Levels Over Time")
}

func TestGenerate_UndecodableChartLeavesNotice(t *testing.T) {
	charts := allCharts(t)
	charts.Put(SalesChart, &ChartImage{Width: 10, Height: 10, PNG: []byte("broken")})

	_, pages := generate(t, sampleSnapshot(), charts)
	text := allText(pages)
	assert.Equal(t, 1, strings.Count(text, chartFailNotice))
	assert.Equal(t, indexOf(text, "Sales & Revenue Trend")+1, indexOf(text, chartFailNotice))
}

func TestGenerate_AwaitsChartsInOrder(t *testing.T) {
	src := &mockSource{}
	img := testChart(t, 80, 40)
	var calls []*mock.Call
	for _, name := range ChartNames() {
		calls = append(calls, src.On("CaptureChart", mock.Anything, name).Return(img, nil).Once())
	}
	mock.InOrder(calls...)

	_, pages := generate(t, sampleSnapshot(), src)
	src.AssertExpectations(t)
	assert.Contains(t, allText(pages), "Inventory Levels Over Time")
}

func TestGenerate_NilSnapshot(t *testing.T) {
	_, err := Generate(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrPrecondition)
}

func TestGenerate_Kinds(t *testing.T) {
	tests := []struct {
		kind    Kind
		want    []string
		notWant []string
	}{
		{
			kind:    KindSummary,
			want:    []string{"Key Performance Metrics"},
			notWant: []string{"Sales & Revenue Trend", "Monthly Sales Data"},
		},
		{
			kind:    KindChartsOnly,
			want:    []string{"Sales & Revenue Trend", "Inventory Levels Over Time"},
			notWant: []string{"Key Performance Metrics", "Monthly Sales Data"},
		},
		{
			kind:    KindDataOnly,
			want:    []string{"Monthly Sales Data", "Top Performing Models"},
			notWant: []string{"Key Performance Metrics", "Sales & Revenue Trend"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			_, pages := generate(t, sampleSnapshot(), allCharts(t), WithKind(tt.kind))
			text := allText(pages)
			assert.Contains(t, text, "Fleet Performance Report")
			for _, w := range tt.want {
				assert.Contains(t, text, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, text, w)
			}
		})
	}
}

func TestGenerate_ExtendedTables(t *testing.T) {
	_, pages := generate(t, sampleSnapshot(), nil, WithExtendedTables())
	text := allText(pages)

	top := indexOf(text, "Top Performing Models")
	status := indexOf(text, "Vehicle Status Distribution")
	location := indexOf(text, "Location Analytics")
	assert.Less(t, top, status)
	assert.Less(t, status, location)
	assert.Contains(t, text, "Downtown")
	assert.Contains(t, text, "82.5%")
}

func TestGenerate_Branding(t *testing.T) {
	res, pages := generate(t, sampleSnapshot(), nil,
		WithProductName("Fleet Desk"),
		WithFilePrefix("Fleet"),
	)
	assert.Equal(t, "Fleet Desk", pages[0][0])
	assert.Equal(t, "Fleet-Report-2024-03-01.pdf", res.Filename())
}

func TestGenerate_LongTablePaginates(t *testing.T) {
	s := sampleSnapshot()
	s.Sales = nil
	for i := 0; i < 60; i++ {
		s.Sales = append(s.Sales, SalesPoint{Month: fmt.Sprintf("M%02d", i), Sales: float64(i)})
	}

	_, pages := generate(t, s, nil, WithKind(KindDataOnly))
	require.GreaterOrEqual(t, len(pages), 2)

	headers := 0
	for _, lines := range pages {
		for i := 0; i+3 < len(lines); i++ {
			if lines[i] == "Month" && lines[i+1] == "Sales" && lines[i+2] == "Revenue" && lines[i+3] == "Inventory" {
				headers++
			}
		}
	}
	assert.GreaterOrEqual(t, headers, 2)
	assert.Contains(t, allText(pages), "M59")
}

func TestGenerator_BuildThenSerialize(t *testing.T) {
	g := NewGenerator(WithClock(fixedClock))
	doc, err := g.Build(testContext(t), sampleSnapshot(), allCharts(t))
	require.NoError(t, err)

	doc.DrawText(20, 20, "late", TextStyle{})
	assert.ErrorIs(t, doc.Err(), ErrSealed)

	_, err = doc.Serialize()
	assert.ErrorIs(t, err, ErrSerialization)
}

func TestGenerator_SerializeTwice(t *testing.T) {
	g := NewGenerator(WithClock(fixedClock))
	doc, err := g.Build(testContext(t), sampleSnapshot(), allCharts(t))
	require.NoError(t, err)

	first, err := doc.Serialize()
	require.NoError(t, err)
	second, err := doc.Serialize()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second))
}

func TestGenerator_ConcurrentCalls(t *testing.T) {
	g := NewGenerator(WithClock(fixedClock))
	charts := allCharts(t)

	var wg sync.WaitGroup
	pages := make([]int, 8)
	errs := make([]error, 8)
	for i := range pages {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := g.Generate(context.Background(), sampleSnapshot(), charts)
			errs[i] = err
			if err == nil {
				pages[i] = res.PageCount()
			}
		}()
	}
	wg.Wait()

	for i := range pages {
		require.NoError(t, errs[i])
		assert.Equal(t, pages[0], pages[i])
	}
}

func TestSuggestedFilename(t *testing.T) {
	assert.Equal(t, "VINScan-Report-2024-03-01.pdf", SuggestedFilename("VINScan", fixedTime))
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindComprehensive, KindSummary, KindChartsOnly, KindDataOnly} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	got, err := ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindComprehensive, got)

	_, err = ParseKind("detailed")
	assert.Error(t, err)
}

func TestGenerate_TableThatFitsAPageIsNotSplit(t *testing.T) {
	s := sampleSnapshot()
	s.Sales = nil
	for i := 0; i < 25; i++ {
		s.Sales = append(s.Sales, SalesPoint{Month: fmt.Sprintf("M%02d", i)})
	}

	_, pages := generate(t, s, nil, WithKind(KindDataOnly))
	require.GreaterOrEqual(t, len(pages), 2)

	assert.NotContains(t, pages[0], "Monthly Sales Data")
	assert.Equal(t, "Monthly Sales Data", pages[1][0])
	assert.Contains(t, pages[1], "M00")
	assert.Contains(t, pages[1], "M24")
}

// blockingSource waits for ctx to end and then reports the context error,
// the way a browser capture does when its caller gives up.
type blockingSource struct{}

func (blockingSource) CaptureChart(ctx context.Context, _ ChartName) (*ChartImage, error) {
	<-ctx.Done()
	return nil, fmt.Errorf("%w: %v", ErrImageCapture, ctx.Err())
}

func TestGenerate_DeadlineDuringCaptureFails(t *testing.T) {
	ctx, cancel := context.WithTimeout(testContext(t), 10*time.Millisecond)
	defer cancel()

	res, err := NewGenerator(WithClock(fixedClock)).Generate(ctx, sampleSnapshot(), blockingSource{})

	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrImageCapture)
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	src := &mockSource{}
	_, err := NewGenerator(WithClock(fixedClock)).Generate(ctx, sampleSnapshot(), src)

	require.ErrorIs(t, err, ErrInterrupted)
	assert.ErrorIs(t, err, context.Canceled)
	src.AssertNotCalled(t, "CaptureChart", mock.Anything, mock.Anything)
}

func TestGenerate_CancelAfterLastChart(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	defer cancel()

	src := &mockSource{}
	for _, name := range ChartNames() {
		call := src.On("CaptureChart", mock.Anything, name).Return(nil, nil).Once()
		if name == InventoryChart {
			call.Run(func(mock.Arguments) { cancel() })
		}
	}

	_, err := NewGenerator(WithClock(fixedClock)).Generate(ctx, sampleSnapshot(), src)

	require.ErrorIs(t, err, ErrInterrupted)
	assert.ErrorIs(t, err, context.Canceled)
	src.AssertExpectations(t)
}
