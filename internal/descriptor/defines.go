package descriptor

import (
	"encoding/json"
	"strconv"
)

const importMetaEnv = "import.meta.env"

// clientValues returns every value visible to client code as
// import.meta.env: the prefixed env keys plus the built-in ones.
func (d *Descriptor) clientValues() map[string]any {
	values := make(map[string]any, d.env.Len()+5)
	for _, key := range d.env.Keys() {
		values[key] = d.env.Value(key)
	}
	values["MODE"] = d.Mode
	values["BASE_URL"] = d.Base
	values["PROD"] = d.IsProduction()
	values["DEV"] = !d.IsProduction()
	values["SSR"] = false
	return values
}

// ClientDefines returns the compile-time replacements handed to the bundler.
// Each value is a JavaScript expression.
func (d *Descriptor) ClientDefines() map[string]string {
	values := d.clientValues()
	defines := make(map[string]string, len(values)+len(d.Define)+1)

	for key, v := range values {
		b, _ := json.Marshal(v)
		defines[importMetaEnv+"."+key] = string(b)
	}
	whole, _ := json.Marshal(values)
	defines[importMetaEnv] = string(whole)

	for key, v := range d.Define {
		defines[key] = v
	}
	return defines
}

// HTMLReplacements returns the %KEY% placeholders substituted in index.html.
func (d *Descriptor) HTMLReplacements() map[string]string {
	values := d.clientValues()
	out := make(map[string]string, len(values))
	for key, v := range values {
		switch v := v.(type) {
		case string:
			out["%"+key+"%"] = v
		case bool:
			out["%"+key+"%"] = strconv.FormatBool(v)
		}
	}
	return out
}
