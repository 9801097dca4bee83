package ui

import "fmt"

// PoolData is one resource pool as shown in the inspector.
type PoolData struct {
	Quantity    float32
	Consumption float32
	Supply      float32
	Bands       Bands
}

// InspectorData holds all the data needed to render the plant inspector.
type InspectorData struct {
	Water    PoolData
	Minerals PoolData

	Current  float32
	Desired  float32
	Target   float32
	WarnBand float32
	HardBand float32
	NextIn   float32 // Seconds until the next retarget

	WaterDial float32 // Dial output [0, 1]
	TempDial  float32
}

func pool(which func(*InspectorData) *PoolData) func(any) *PoolData {
	return func(d any) *PoolData { return which(d.(*InspectorData)) }
}

// poolSection builds the descriptor for one pool.
func poolSection(id, title string, get func(any) *PoolData) SectionDescriptor {
	return SectionDescriptor{
		ID:    id,
		Title: title,
		Fields: []FieldDescriptor{
			{
				ID:         id + ".quantity",
				Label:      "Level",
				Widget:     WidgetBandBar,
				Getter:     func(d any) float32 { return get(d).Quantity },
				BandGetter: func(d any) Bands { return get(d).Bands },
			},
			{
				ID:     id + ".consumption",
				Label:  "Drain/s",
				Widget: WidgetText,
				Format: "%.3f",
				Getter: func(d any) float32 { return get(d).Consumption },
			},
			{
				ID:      id + ".supply",
				Label:   "Supply/s",
				Widget:  WidgetText,
				Format:  "%.3f",
				Getter:  func(d any) float32 { return get(d).Supply },
				Visible: func(d any) bool { return get(d).Supply > 0 },
			},
		},
	}
}

// inspectorSections describes the inspector layout.
var inspectorSections = []SectionDescriptor{
	poolSection("water", "Water", pool(func(d *InspectorData) *PoolData { return &d.Water })),
	poolSection("minerals", "Minerals", pool(func(d *InspectorData) *PoolData { return &d.Minerals })),
	{
		ID:    "temperature",
		Title: "Temperature",
		Fields: []FieldDescriptor{
			{ID: "temp.current", Label: "Current", Widget: WidgetText, Format: "%.1f°C",
				Getter: func(d any) float32 { return d.(*InspectorData).Current }},
			{ID: "temp.desired", Label: "Desired", Widget: WidgetText, Format: "%.1f°C",
				Getter: func(d any) float32 { return d.(*InspectorData).Desired }},
			{ID: "temp.target", Label: "Heading to", Widget: WidgetText, Format: "%.1f°C",
				Getter: func(d any) float32 { return d.(*InspectorData).Target }},
			{
				ID:      "temp.diff",
				Label:   "Difference",
				Widget:  WidgetCenteredBar,
				Range:   FieldRange{Min: -1, Max: 1},
				Getter:  func(d any) float32 { x := d.(*InspectorData); return x.Current - x.Desired },
				Visible: func(d any) bool { return d.(*InspectorData).HardBand > 0 },
			},
			{ID: "temp.next", Label: "Retarget", Widget: WidgetText,
				TextGetter: func(d any) string { return fmt.Sprintf("in %.1fs", d.(*InspectorData).NextIn) }},
		},
	},
	{
		ID:    "dials",
		Title: "Dials",
		Fields: []FieldDescriptor{
			{ID: "dial.water", Label: "Water", Widget: WidgetBar,
				Getter: func(d any) float32 { return d.(*InspectorData).WaterDial }},
			{ID: "dial.temp", Label: "Heat", Widget: WidgetBar,
				Getter: func(d any) float32 { return d.(*InspectorData).TempDial }},
		},
	},
}

// Inspector renders the plant inspection panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel and returns the Y below it.
func (ins *Inspector) Draw(data InspectorData) int32 {
	r := ins.renderer
	padding := r.Theme.Padding

	r.DrawPanel(ins.x, ins.y, ins.width, 330)

	y := ins.y + padding
	contentWidth := ins.width - padding*2
	for _, sd := range inspectorSections {
		// Difference bar spans the hard band on either side
		if sd.ID == "temperature" {
			sd = withDiffRange(sd, data.HardBand)
		}
		y = r.DrawSection(ins.x+padding, y, sd, &data, contentWidth)
	}
	return y
}

// withDiffRange returns sd with the difference bar scaled to ±limit.
func withDiffRange(sd SectionDescriptor, limit float32) SectionDescriptor {
	fields := make([]FieldDescriptor, len(sd.Fields))
	copy(fields, sd.Fields)
	for i := range fields {
		if fields[i].ID == "temp.diff" {
			fields[i].Range = FieldRange{Min: -limit, Max: limit}
		}
	}
	sd.Fields = fields
	return sd
}
