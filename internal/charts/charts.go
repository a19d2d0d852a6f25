// Package charts рисует графики для отчётов с помощью go-chart
package charts

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ivanoskov/subscription_bot/internal/service"
)

// ChartGenerator генерирует изображения графиков для отчётов
type ChartGenerator struct{}

// NewChartGenerator создает новый генератор графиков
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{}
}

// colorFromHex переводит hex-цвет категории в цвет go-chart
func colorFromHex(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// GenerateMonthlySpending строит столбчатый график трат за последние 12 месяцев
func (g *ChartGenerator) GenerateMonthlySpending(buckets []service.MonthBucket) ([]byte, error) {
	if len(buckets) == 0 {
		return nil, nil // Нет данных для графика
	}

	bars := make([]chart.Value, 0, len(buckets))
	for _, bucket := range buckets {
		bars = append(bars, chart.Value{
			Label: bucket.Month,
			Value: bucket.Amount,
		})
	}

	graph := chart.BarChart{
		Title:    "Траты по месяцам",
		Width:    1200,
		Height:   600,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 50, Right: 50, Bottom: 50},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.Style{
			FontSize:  12,
			FontColor: chart.ColorBlack,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render monthly spending chart: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateCategoryDistribution строит кольцевую диаграмму распределения по категориям
func (g *ChartGenerator) GenerateCategoryDistribution(stats []service.CategoryStat) ([]byte, error) {
	if len(stats) == 0 {
		return nil, nil // Нет данных для графика
	}

	values := make([]chart.Value, 0, len(stats))
	for _, stat := range stats {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", stat.Name, stat.Percentage),
			Value: stat.Total,
			Style: chart.Style{
				FillColor: colorFromHex(stat.Color),
			},
		})
	}

	graph := chart.DonutChart{
		Title:  "Распределение по категориям",
		Width:  800,
		Height: 800,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 40, Right: 40, Bottom: 40},
			FillColor: chart.ColorWhite,
		},
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render category chart: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateSpendingTrend строит линии фактических трат и средней месячной суммы
func (g *ChartGenerator) GenerateSpendingTrend(trend []service.TrendBucket) ([]byte, error) {
	if len(trend) == 0 {
		return nil, nil // Нет данных для графика
	}

	xValues := make([]float64, 0, len(trend))
	actualValues := make([]float64, 0, len(trend))
	averageValues := make([]float64, 0, len(trend))
	ticks := make([]chart.Tick, 0, len(trend))

	for i, point := range trend {
		xValues = append(xValues, float64(i))
		actualValues = append(actualValues, point.Actual)
		averageValues = append(averageValues, point.Average)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: point.Month})
	}

	graph := chart.Chart{
		Title:  "Тренд трат",
		Width:  1200,
		Height: 600,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 50, Right: 50, Bottom: 50},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Фактические траты",
				XValues: xValues,
				YValues: actualValues,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 3,
				},
			},
			chart.ContinuousSeries{
				Name:    "Средняя по подпискам",
				XValues: xValues,
				YValues: averageValues,
				Style: chart.Style{
					StrokeColor:     chart.ColorBlue,
					StrokeWidth:     2,
					StrokeDashArray: []float64{5.0, 5.0},
				},
			},
		},
	}

	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render trend chart: %w", err)
	}
	return buf.Bytes(), nil
}
