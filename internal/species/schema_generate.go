package species

import "github.com/invopop/jsonschema"

// GenerateSchema reflects the authoring config into a JSON schema document
// for editor tooling. The embedded schema the loader validates against is
// maintained by hand; this reflection is the starting point when the config
// struct grows a field.
func GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(Config))
	schema.Title = "Species Authoring Config"
	schema.Description = "Validates per-species behavior configs embedded in the simulator"
	return schema
}
