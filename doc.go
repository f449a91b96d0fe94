/*
Package moderr is a more modern take on Go errors: errors carry a display
name, a stack trace and an open set of properties, and control which of
their hidden fields end up in their serialized form.

# Basic Usage

Errors can be created from a message, a property bag, both, or an existing error.

	err := moderr.New("item not found", moderr.Properties{"status": 404, "code": "D12"})

	err = moderr.FromProperties(moderr.Properties{
		"message": "item not found",
		"status":  404,
	})

	err = moderr.From(io.EOF, moderr.Properties{"code": "D12"})

Make accepts any of these shapes, and formats anything else with fmt.Sprint.

# Error Types

Types are defined once, typically at the package's global scope.
A type's display name becomes the name of its errors, and its defaults are
applied to every error it creates before the constructor's properties.

	var (
		DatabaseError = moderr.Define("DatabaseError")

		HTTPError = moderr.Define("HTTPError",
			moderr.Defaults(moderr.Properties{"status": 500}),
		)

		NotFoundError = HTTPError.Extend("NotFoundError",
			moderr.Defaults(moderr.Properties{"status": 404}),
		)
	)

Subtypes can also be created from a single TypeSpec value:

	StackError := moderr.Base.Subclass(moderr.TypeSpec{
		Name:          "StackError",
		SerializeKeys: []string{"message", "stack"},
	})

Errors match their type and all of its ancestors with the standard errors.Is:

	err := NotFoundError.New("user not found")
	errors.Is(err, NotFoundError) // true
	errors.Is(err, HTTPError)     // true
	errors.Is(err, DatabaseError) // false

Typed properties can be extracted through the error chain:

	status, ok := moderr.Property[int](err, "status")

# Serialization

Serialize returns the properties of an error plus the keys listed in its
type's SerializeKeys, sorted by key. By default only the message is added;
the name and the stack trace are left out unless requested:

	moderr.Base.SetSerializeKeys("message", "name", "stack")

json.Marshal and slog use this representation. Errors can be restored from
it with a Resolver:

	r := moderr.NewResolver(HTTPError, NotFoundError).WithFallback(moderr.Base)
	restored, err := r.Unmarshal(data)

Type configuration is not synchronized: configure types before creating
errors from multiple goroutines.
*/
package moderr
