package navindex

// Example returns the navigation declaration this tool was built around: a
// spectral-Galerkin manual with a Contents section, a flat gallery of PDE
// demos and three external project links. `navbuilder init` writes it as the
// starting index.
func Example() *Index {
	return &Index{Sections: []Section{
		{
			Title:    "Contents",
			MaxDepth: 3,
			Entries: []Entry{
				{Page: "introduction"},
				{Page: "gettingstarted"},
				{Page: "installation"},
				{Page: "citing"},
				{Page: "contributing"},
			},
		},
		{
			Title:    "Demos",
			MaxDepth: 1,
			Entries: []Entry{
				{Page: "poisson"},
				{Page: "poisson3d"},
				{Page: "helmholtz"},
				{Page: "polarhelmholtz"},
				{Page: "sphericalhelmholtz"},
				{Page: "biharmonic"},
				{Page: "kleingordon"},
				{Page: "kuramatosivashinsky"},
				{Page: "stokes"},
				{Page: "drivencavity"},
				{Page: "rayleighbenard"},
				{Page: "moebius"},
				{Page: "tau"},
				{Page: "functions"},
				{Page: "integrators"},
				{Page: "sparsity"},
				{Page: "surfaceintegration"},
				{Label: "shenfun", URL: "https://github.com/spectralDNS/shenfun"},
				{Label: "mpi4py-fft", URL: "https://bitbucket.org/mpi4py/mpi4py-fft"},
				{Label: "Fenics", URL: "https://fenicsproject.org"},
			},
		},
	}}
}
