package ir

// ModuleType mirrors the build orchestrator's module kinds.
type ModuleType string

const (
	ModuleExternal  ModuleType = "External"
	ModuleCPlusPlus ModuleType = "CPlusPlus"
)

// RuntimeDependency is a file that must be staged next to the built binary.
type RuntimeDependency struct {
	Path string `json:"path"`
}

// ModuleRules is the descriptor consumed by the build orchestrator.
type ModuleRules struct {
	Name                          string              `json:"name"`
	Type                          ModuleType          `json:"type"`
	PublicIncludePaths            []string            `json:"publicIncludePaths"`
	PublicSystemIncludePaths      []string            `json:"publicSystemIncludePaths"`
	PrivateIncludePaths           []string            `json:"privateIncludePaths"`
	PublicLibraryPaths            []string            `json:"publicLibraryPaths"`
	PublicAdditionalLibraries     []string            `json:"publicAdditionalLibraries"`
	PublicDependencyModuleNames   []string            `json:"publicDependencyModuleNames"`
	PrivateDependencyModuleNames  []string            `json:"privateDependencyModuleNames"`
	PrivateIncludePathModuleNames []string            `json:"privateIncludePathModuleNames"`
	DynamicallyLoadedModuleNames  []string            `json:"dynamicallyLoadedModuleNames"`
	RuntimeDependencies           []RuntimeDependency `json:"runtimeDependencies"`
}
