// Package facts defines the input contract with the parser stage: one
// FileFact per source file, delivered as a single complete batch. The parser
// itself lives outside this repository; migraph only consumes its output.
package facts

// FileFact holds the structural facts extracted from one source file.
// Every field is optional on the wire; absent fields decode to their zero
// value, which is the documented default. Facts are never mutated after load.
type FileFact struct {
	FilePath    string   `json:"filePath"`
	PackageName string   `json:"packageName,omitempty"`
	ClassNames  []string `json:"classNames,omitempty"`
	Imports     []string `json:"imports,omitempty"`

	LineCount         int `json:"lineCount,omitempty"`
	MethodCount       int `json:"methodCount,omitempty"`
	ClassCount        int `json:"classCount,omitempty"`
	FieldCount        int `json:"fieldCount,omitempty"`
	ImportCount       int `json:"importCount,omitempty"`
	CatchBlockCount   int `json:"catchBlockCount,omitempty"`
	StaticMethodCount int `json:"staticMethodCount,omitempty"`

	ReadsFromDb          bool `json:"readsFromDb,omitempty"`
	WritesToDb           bool `json:"writesToDb,omitempty"`
	UsesReflection       bool `json:"usesReflection,omitempty"`
	UsesThreading        bool `json:"usesThreading,omitempty"`
	UsesStreams          bool `json:"usesStreams,omitempty"`
	UsesGenerics         bool `json:"usesGenerics,omitempty"`
	UsesAnnotations      bool `json:"usesAnnotations,omitempty"`
	HasInheritance       bool `json:"hasInheritance,omitempty"`
	ImplementsInterfaces bool `json:"implementsInterfaces,omitempty"`
	HasInnerClasses      bool `json:"hasInnerClasses,omitempty"`
	ThrowsExceptions     bool `json:"throwsExceptions,omitempty"`
}

// Batch is the top-level shape the parser emits.
type Batch struct {
	Files []FileFact `json:"files"`
}
