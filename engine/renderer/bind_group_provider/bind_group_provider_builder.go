package bind_group_provider

// BindGroupProviderBuilderOption is a functional option for configuring a BindGroupProvider.
type BindGroupProviderBuilderOption func(*bindGroupProvider)

// WithLabel sets the debug label used for every GPU resource created for the provider.
//
// Parameters:
//   - label: the debug label
//
// Returns:
//   - BindGroupProviderBuilderOption: option function to apply
func WithLabel(label string) BindGroupProviderBuilderOption {
	return func(p *bindGroupProvider) {
		p.label = label
	}
}
