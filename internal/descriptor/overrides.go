package descriptor

// Overrides holds tool-config values that replace descriptor defaults. Zero
// fields leave the descriptor unchanged.
type Overrides struct {
	Host        string
	Port        int
	PreviewPort int
	Open        *bool
	OutDir      string
	StrictPort  *bool
}

// ApplyOverrides applies o and re-validates the result.
func (d *Descriptor) ApplyOverrides(o Overrides) error {
	if o.Host != "" {
		d.Server.Host = o.Host
		d.Preview.Host = o.Host
	}
	if o.Port != 0 {
		d.Server.Port = o.Port
	}
	if o.PreviewPort != 0 {
		d.Preview.Port = o.PreviewPort
	}
	if o.Open != nil {
		d.Server.Open = *o.Open
	}
	if o.StrictPort != nil {
		d.Server.StrictPort = *o.StrictPort
		d.Preview.StrictPort = *o.StrictPort
	}
	if o.OutDir != "" {
		d.Build.OutDir = o.OutDir
	}
	return d.Validate()
}
