package circuit

import "encoding/json"

// DocumentVersion is the current persisted format version.
const DocumentVersion = 1

// Document is the persisted form of a circuit. Only structure and selector
// indices survive the round trip; derived fields (current, voltage, damage,
// temperature, validator-owned booleans) are rebuilt from zero after a load.
type Document struct {
	Version    int            `json:"version"`
	Components []ComponentDoc `json:"components"`
	Wires      []WireDoc      `json:"wires"`
}

// ComponentDoc is one persisted component. Kind-specific fields are pointers
// so absent fields stay absent for kinds that do not use them.
type ComponentDoc struct {
	ID       string  `json:"id"`
	Kind     string  `json:"kind"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation int     `json:"rotation"`

	VoltageIndex    *int  `json:"voltageIndex,omitempty"`
	ResistanceIndex *int  `json:"resistanceIndex,omitempty"`
	ColorIndex      *int  `json:"colorIndex,omitempty"`
	Closed          *bool `json:"closed,omitempty"`
	OutA            *bool `json:"outA,omitempty"`
	OutB            *bool `json:"outB,omitempty"`
}

// WireDoc is one persisted wire.
type WireDoc struct {
	ID        string     `json:"id"`
	From      EndpointDoc `json:"from"`
	To        EndpointDoc `json:"to"`
	Waypoints []Point    `json:"waypoints,omitempty"`
}

// EndpointDoc is one persisted wire endpoint.
type EndpointDoc struct {
	ComponentID string `json:"componentId"`
	Terminal    string `json:"terminal"`
}

// ToDocument serializes the circuit's persistent state.
func (c *Circuit) ToDocument() Document {
	doc := Document{
		Version:    DocumentVersion,
		Components: make([]ComponentDoc, 0, len(c.components)),
		Wires:      make([]WireDoc, 0, len(c.wires)),
	}
	for _, comp := range c.components {
		cd := ComponentDoc{
			ID:       string(comp.ID),
			Kind:     comp.Kind.String(),
			X:        comp.Position.X,
			Y:        comp.Position.Y,
			Rotation: comp.Rotation,
		}
		if spec, ok := SpecFor(comp.Kind); ok {
			spec.EncodeProps(comp.Props, &cd)
		}
		doc.Components = append(doc.Components, cd)
	}
	for _, w := range c.wires {
		doc.Wires = append(doc.Wires, WireDoc{
			ID:        string(w.ID),
			From:      EndpointDoc{ComponentID: string(w.From.ComponentID), Terminal: w.From.Terminal},
			To:        EndpointDoc{ComponentID: string(w.To.ComponentID), Terminal: w.To.Terminal},
			Waypoints: w.Waypoints,
		})
	}
	return doc
}

// Load replaces the circuit's contents with the document's. Malformed
// entries degrade benignly: unknown kinds are skipped, and a wire whose
// endpoint references a missing component is dropped rather than rejected.
func (c *Circuit) Load(doc Document) error {
	if doc.Version > DocumentVersion {
		return ErrUnsupportedVersion
	}
	c.Clear()
	for _, cd := range doc.Components {
		kind := KindFromString(cd.Kind)
		spec, ok := SpecFor(kind)
		if !ok {
			continue
		}
		comp := &Component{
			ID:       ComponentID(cd.ID),
			Kind:     kind,
			Position: Point{X: cd.X, Y: cd.Y},
			Rotation: ((cd.Rotation % RotationSteps) + RotationSteps) % RotationSteps,
			Props:    spec.DecodeProps(cd),
		}
		c.put(comp)
	}
	for _, wd := range doc.Wires {
		from := Endpoint{ComponentID: ComponentID(wd.From.ComponentID), Terminal: wd.From.Terminal}
		to := Endpoint{ComponentID: ComponentID(wd.To.ComponentID), Terminal: wd.To.Terminal}
		if !c.endpointValid(from) || !c.endpointValid(to) {
			continue
		}
		w := &Wire{
			ID:         WireID(wd.ID),
			From:       from,
			To:         to,
			Resistance: WireResistance,
			Waypoints:  wd.Waypoints,
		}
		if w.ID == "" {
			w.ID = NewWireID()
		}
		c.wires = append(c.wires, w)
		c.wireByID[w.ID] = w
	}
	return nil
}

func (c *Circuit) endpointValid(ep Endpoint) bool {
	comp, ok := c.byID[ep.ComponentID]
	if !ok {
		return false
	}
	_, ok = comp.Terminal(ep.Terminal)
	return ok
}

// Encode marshals a document to its JSON wire form.
func (d Document) Encode() ([]byte, error) {
	return json.Marshal(d)
}

// DecodeDocument unmarshals a JSON document.
func DecodeDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, err
	}
	return d, nil
}
