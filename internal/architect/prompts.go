package architect

// slugPrompt asks for a short filename-safe identifier. The verb
// matters: the model must answer with the slug alone.
const slugPrompt = `Generate a 1-3 word slug (underscore_separated) for this system: %s
Remember to only return the slug without any additional text.`

const designSystemPrompt = `You are a Sr. Software Architect. Your role is to ensure a complete, thorough, simple and elegant design is captured before implementation begins.`

// designPrompt is the full design-generation request. The tagged output
// blocks it demands are what the extraction step looks for, so their
// names must stay in sync with the patterns in output.go.
const designPrompt = `As a Sr. Software Architect, your task is to create a comprehensive technical design document for a software system. This document should describe the architecture, technical requirements, implementation considerations, and other relevant details for implementing the system.

Before we begin, here is the necessary information for your task:

1. Feature Descriptions:
<feature_descriptions>
%s
</feature_descriptions>

2. Technical Context:
<technical_context>
%s
</technical_context>

3. Existing Markdown (if available):
<existing_markdown>
%s
</existing_markdown>

Please follow these steps to create the technical design document:

1. Analyze the provided information:
   - Study the feature descriptions to understand core functionality, requirements, and goals.
   - Review the technical context for constraints, existing technologies, and integration points.
   - If existing markdown files are provided, determine necessary updates.

2. Evaluate each feature:
   - Consider its technical requirements and how the technical context applies to its design.
   - Assess how each sub-system might change to enable this feature or if additional systems are required.
   - If a requirement could be met by multiple sub-systems, choose the best fit while keeping implementation simple.

3. Identify critical missing details:
   - Focus on major architectural and project-level elements.
   - Ignore minor implementation details unless they significantly impact feasibility or success.

4. Address gaps with best practices:
   - For each critical missing detail, recommend solutions based on industry best practices.

5. Note assumptions:
   - Document any assumptions you make about the project or its requirements.

6. Create the technical design document with the following sections:
   a. Executive Summary
   b. System Architecture
   c. Technical Requirements
   d. Data Model
   e. API Design (if applicable)
   f. Security Considerations
   g. Scalability and Performance
   h. Integration Points
   i. Development and Deployment
   j. Monitoring and Logging
   k. Future Considerations

7. Writing guidelines:
   - Use clear, concise language suitable for a technical audience.
   - Include diagrams or flowcharts where appropriate.
   - Justify design decisions and explain trade-offs.
   - Address specific concerns from the feature descriptions or technical context.
   - Incorporate relevant information from existing markdown files, updating as necessary.
   - FULLY integrate the information from the <technical_context> into your document. DO NOT reference its source. For example, if a data structure or format is specified repeat it here. DO NOT say "as specified in..." or something similar. Do not assume the <technical_context> will be available to the consumer of this doc.

Before providing your final output, conduct your architecture planning inside <architecture_planning> tags within your thinking block. This should include:

1. Extracting key points from the feature descriptions and technical context.
2. Listing and prioritizing features based on their complexity and impact.
3. Creating a high-level system diagram.
4. Identifying major components of the system.
5. Listing potential challenges or areas requiring special attention.
6. Identifying potential risks and mitigation strategies.
7. For each major design decision:
   - List pros and cons
   - Justify your final choice
8. Outline any assumptions you're making about the project or requirements.

After completing your architecture planning, present your final document in the following format:

<technical_design_document>
# Executive Summary
[Brief overview]

# System Architecture
[High-level architecture description]

# Technical Requirements
[List and explanation of requirements]

# Data Model
[Description of data structures and relationships]

# API Design
[If applicable: API endpoints, request/response formats, authentication methods]

# Security Considerations
[Security measures and best practices]

# Scalability and Performance
[Strategies for growth and performance maintenance]

# Integration Points
[Description of system integrations]

# Development and Deployment
[Guidelines for development, testing, and deployment]

# Monitoring and Logging
[Monitoring and logging mechanisms]

# Future Considerations
[Potential areas for expansion or improvement]
</technical_design_document>

If you've updated any existing markdown content, include it here:

<updated_markdown>
[Updated markdown content, if applicable]
</updated_markdown>

Remember to focus on major architectural and project-level design decisions. Your final output should include the content within the <architecture_planning> thinking block, <technical_design_document> and <updated_markdown> tags.`
