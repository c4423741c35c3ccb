package v1

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

// CompareSpec configures one comparison run. Empty fields fall back to
// command-line flags and then to the built-in defaults.
type CompareSpec struct {
	// URL is the base address of the repository database export API.
	// It may reference environment variables (e.g. "${ALT_API_URL}").
	URL     string `json:"url,omitempty"`
	Branch1 string `json:"branch1,omitempty"`
	Branch2 string `json:"branch2,omitempty"`
	Arch    string `json:"arch,omitempty"`
}

type Compare struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec CompareSpec `json:"spec"`
}
