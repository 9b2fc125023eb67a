package parser

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sheetview-go/pkg/sheetview/models"
)

// chartTypeNames maps OOXML chart element tags to chart type names.
var chartTypeNames = map[string]string{
	"lineChart":      "Line",
	"line3DChart":    "3DLine",
	"barChart":       "Bar",
	"bar3DChart":     "3DBar",
	"areaChart":      "Area",
	"area3DChart":    "3DArea",
	"pieChart":       "Pie",
	"pie3DChart":     "3DPie",
	"doughnutChart":  "Doughnut",
	"scatterChart":   "XYScatter",
	"bubbleChart":    "Bubble",
	"radarChart":     "Radar",
	"surfaceChart":   "Surface",
	"surface3DChart": "3DSurface",
	"stockChart":     "Stock",
	"ofPieChart":     "PieOfPie",
}

// drawingObject is one anchored object found in a drawing part before
// its chart data is resolved.
type drawingObject struct {
	kind     models.ChartKind
	name     string
	chartRID string
	pos      models.ChartPosition
}

// ParseDrawings extracts chart and image anchors from a workbook's
// drawing parts. excelize exposes no chart read API, so the xl/drawings
// XML is walked directly.
func ParseDrawings(xlsxPath string) (map[string][]models.Chart, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	result := make(map[string][]models.Chart)
	for sheetName, sheetPath := range sheetPathMap(&r.Reader) {
		relsPath := strings.Replace(sheetPath, "worksheets/", "worksheets/_rels/", 1) + ".rels"
		relsXML, err := readZipFile(&r.Reader, relsPath)
		if err != nil || relsXML == nil {
			continue
		}
		drawingTarget := findRelationshipTarget(relsXML, "drawing")
		if drawingTarget == "" {
			continue
		}
		drawingPath := resolveRelativePath(drawingTarget, "xl/drawings")
		charts := parseDrawingPart(&r.Reader, drawingPath)
		if len(charts) > 0 {
			result[sheetName] = charts
		}
	}
	return result, nil
}

// parseDrawingPart extracts all anchored objects from one drawing file
// and resolves chart data for the chart objects.
func parseDrawingPart(r *zip.Reader, drawingPath string) []models.Chart {
	drawingXML, err := readZipFile(r, drawingPath)
	if err != nil || drawingXML == nil {
		return nil
	}
	objects := parseAnchors(drawingXML)
	if len(objects) == 0 {
		return nil
	}

	relsPath := strings.Replace(drawingPath, "drawings/", "drawings/_rels/", 1) + ".rels"
	chartPaths := make(map[string]string)
	if relsXML, err := readZipFile(r, relsPath); err == nil && relsXML != nil {
		chartPaths = chartRelTargets(relsXML)
	}

	charts := make([]models.Chart, 0, len(objects))
	for _, obj := range objects {
		pos := obj.pos
		anchor, _ := excelize.CoordinatesToCellName(pos.FromCol+1, pos.FromRow+1)
		chart := models.Chart{
			Name:     obj.name,
			Kind:     obj.kind,
			Anchor:   anchor,
			Position: &pos,
		}
		if obj.kind == models.KindChart {
			if target, ok := chartPaths[obj.chartRID]; ok {
				chartPath := resolveRelativePath(target, "xl/charts")
				if chartXML, err := readZipFile(r, chartPath); err == nil && chartXML != nil {
					chart.Data = parseChartPart(chartXML)
				}
			}
		}
		charts = append(charts, chart)
	}
	return charts
}

// parseAnchors walks a drawing XML stream for one- and two-cell anchors
// holding charts (graphicFrame) or images (pic).
func parseAnchors(data []byte) []drawingObject {
	var objects []drawingObject
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok {
			switch se.Name.Local {
			case "twoCellAnchor", "oneCellAnchor":
				if obj, ok := parseAnchor(decoder, se.Name.Local == "oneCellAnchor"); ok {
					objects = append(objects, obj)
				}
			}
		}
	}
	return objects
}

// parseAnchor consumes one anchor element. For a one-cell anchor the
// terminal coordinate derives from the anchor plus the ext extent, so
// both anchor flavors yield a full from/to position.
func parseAnchor(decoder *xml.Decoder, oneCell bool) (drawingObject, bool) {
	var obj drawingObject
	var extCX, extCY int64
	found := false
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "from":
				obj.pos.FromCol, obj.pos.FromColOffset, obj.pos.FromRow, obj.pos.FromRowOffset = parseMarker(decoder)
				depth--
			case "to":
				obj.pos.ToCol, obj.pos.ToColOffset, obj.pos.ToRow, obj.pos.ToRowOffset = parseMarker(decoder)
				depth--
			case "ext":
				// Direct child of a one-cell anchor; pic/graphicFrame
				// subtrees are consumed before this level sees them.
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "cx":
						extCX, _ = strconv.ParseInt(attr.Value, 10, 64)
					case "cy":
						extCY, _ = strconv.ParseInt(attr.Value, 10, 64)
					}
				}
			case "graphicFrame":
				obj.kind = models.KindChart
				obj.name, obj.chartRID = parseGraphicFrame(decoder)
				found = obj.chartRID != ""
				depth--
			case "pic":
				obj.kind = models.KindImage
				obj.name = parsePic(decoder)
				found = true
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	if oneCell {
		obj.pos.ToCol = obj.pos.FromCol
		obj.pos.ToRow = obj.pos.FromRow
		obj.pos.ToColOffset = obj.pos.FromColOffset + extCX
		obj.pos.ToRowOffset = obj.pos.FromRowOffset + extCY
	}
	return obj, found
}

// parseMarker reads a from/to marker: col, colOff, row, rowOff children.
func parseMarker(decoder *xml.Decoder) (col int, colOff int64, row int, rowOff int64) {
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "col":
				if txt, err := readElementText(decoder); err == nil {
					col, _ = strconv.Atoi(strings.TrimSpace(txt))
				}
				depth--
			case "colOff":
				if txt, err := readElementText(decoder); err == nil {
					colOff, _ = strconv.ParseInt(strings.TrimSpace(txt), 10, 64)
				}
				depth--
			case "row":
				if txt, err := readElementText(decoder); err == nil {
					row, _ = strconv.Atoi(strings.TrimSpace(txt))
				}
				depth--
			case "rowOff":
				if txt, err := readElementText(decoder); err == nil {
					rowOff, _ = strconv.ParseInt(strings.TrimSpace(txt), 10, 64)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return
}

// parseGraphicFrame reads a chart frame: its display name and the chart
// part relationship id.
func parseGraphicFrame(decoder *xml.Decoder) (name, rID string) {
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "cNvPr":
				for _, attr := range t.Attr {
					if attr.Name.Local == "name" {
						name = attr.Value
					}
				}
			case "chart":
				for _, attr := range t.Attr {
					if attr.Name.Local == "id" {
						rID = attr.Value
					}
				}
			}
		case xml.EndElement:
			depth--
		}
	}
	return
}

// parsePic reads a picture element's display name.
func parsePic(decoder *xml.Decoder) string {
	var name string
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "cNvPr" {
				for _, attr := range t.Attr {
					if attr.Name.Local == "name" {
						name = attr.Value
					}
				}
			}
		case xml.EndElement:
			depth--
		}
	}
	return name
}

// parseChartPart parses a chart XML part into plottable chart data.
func parseChartPart(data []byte) *models.ChartData {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	chart := &models.ChartData{}

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok {
			switch se.Name.Local {
			case "title":
				if chart.Title == "" {
					chart.Title = parseChartTitle(decoder)
				}
			case "ser":
				chart.Series = append(chart.Series, parseSeries(decoder))
			default:
				if typeName, ok := chartTypeNames[se.Name.Local]; ok {
					chart.Type = typeName
				}
			}
		}
	}

	if chart.Type == "" && len(chart.Series) == 0 {
		return nil
	}
	if chart.Type == "" {
		chart.Type = "unknown"
	}
	return chart
}

// parseChartTitle reads the first text run of a title element.
func parseChartTitle(decoder *xml.Decoder) string {
	var title string
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "t" && title == "" {
				if txt, err := readElementText(decoder); err == nil {
					title = strings.TrimSpace(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return title
}

// parseSeries reads one c:ser element: series name, cached category
// labels, and cached values.
func parseSeries(decoder *xml.Decoder) models.ChartSeries {
	var s models.ChartSeries
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "tx":
				s.Name = parseSeriesName(decoder)
				depth--
			case "cat":
				s.Categories = parseCachedPoints(decoder)
				depth--
			case "val":
				for _, v := range parseCachedPoints(decoder) {
					if f, err := strconv.ParseFloat(v, 64); err == nil {
						s.Values = append(s.Values, f)
					}
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return s
}

// parseSeriesName reads the cached series name from a tx element.
func parseSeriesName(decoder *xml.Decoder) string {
	var name string
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "v" {
				if txt, err := readElementText(decoder); err == nil {
					name = strings.TrimSpace(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return name
}

// parseCachedPoints collects the cached pt values of a cat or val
// reference, in document order.
func parseCachedPoints(decoder *xml.Decoder) []string {
	var points []string
	depth := 1
	inPoint := false
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "pt":
				inPoint = true
			case "v":
				if inPoint {
					if txt, err := readElementText(decoder); err == nil {
						points = append(points, strings.TrimSpace(txt))
					}
					depth--
				}
			}
		case xml.EndElement:
			depth--
			if t.Name.Local == "pt" {
				inPoint = false
			}
		}
	}
	return points
}

// sheetPathMap maps sheet names to worksheet part paths by joining
// workbook.xml with its relationships.
func sheetPathMap(r *zip.Reader) map[string]string {
	result := make(map[string]string)

	workbookXML, err := readZipFile(r, "xl/workbook.xml")
	if err != nil || workbookXML == nil {
		return result
	}
	nameToRID := parseWorkbookSheets(workbookXML)
	if len(nameToRID) == 0 {
		return result
	}

	relsXML, err := readZipFile(r, "xl/_rels/workbook.xml.rels")
	if err != nil || relsXML == nil {
		return result
	}
	ridToTarget := relationshipTargets(relsXML)

	for name, rid := range nameToRID {
		if target, ok := ridToTarget[rid]; ok {
			result[name] = resolveRelativePath(target, "xl")
		}
	}
	return result
}

// parseWorkbookSheets maps sheet names to relationship ids.
func parseWorkbookSheets(data []byte) map[string]string {
	result := make(map[string]string)
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var name, rid string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					name = attr.Value
				case "id":
					rid = attr.Value
				}
			}
			if name != "" && rid != "" {
				result[name] = rid
			}
		}
	}
	return result
}

// relationshipTargets maps relationship ids to their targets.
func relationshipTargets(data []byte) map[string]string {
	result := make(map[string]string)
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rid, target string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rid = attr.Value
				case "Target":
					target = attr.Value
				}
			}
			if rid != "" && target != "" {
				result[rid] = target
			}
		}
	}
	return result
}

// findRelationshipTarget returns the first relationship target whose
// type contains the given keyword.
func findRelationshipTarget(data []byte, keyword string) string {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var target, relType string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Target":
					target = attr.Value
				case "Type":
					relType = attr.Value
				}
			}
			if strings.Contains(strings.ToLower(relType), keyword) {
				return target
			}
		}
	}
	return ""
}

// chartRelTargets maps relationship ids to chart part targets.
func chartRelTargets(data []byte) map[string]string {
	result := make(map[string]string)
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rid, target, relType string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rid = attr.Value
				case "Target":
					target = attr.Value
				case "Type":
					relType = attr.Value
				}
			}
			if strings.Contains(strings.ToLower(relType), "chart") {
				result[rid] = target
			}
		}
	}
	return result
}

// readZipFile reads one archive member, returning nil when absent.
func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

// readElementText reads the character data up to the current element's
// end tag.
func readElementText(decoder *xml.Decoder) (string, error) {
	var text string
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return text, err
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
		case xml.CharData:
			text += string(t)
		case xml.EndElement:
			depth--
		}
	}
	return text, nil
}

// resolveRelativePath resolves a relationship target against its base
// directory, collapsing "../" segments.
func resolveRelativePath(target, baseDir string) string {
	target = strings.TrimPrefix(target, "/")
	if strings.HasPrefix(target, "xl/") {
		return target
	}
	return path.Clean(path.Join(baseDir, target))
}
